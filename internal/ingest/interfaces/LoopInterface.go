package interfaces

type LoopInterface interface {
	Init() error
	Stop()
	Restore() error
	Persist() error
	Errors() <-chan error
}

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}
