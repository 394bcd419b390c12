package bloom

type noopAdmitter struct{}

func newNoOp() *noopAdmitter {
	return &noopAdmitter{}
}

func (f *noopAdmitter) Record(h uint64)                     {}
func (f *noopAdmitter) Allow(candidate, victim uint64) bool { return true }
func (f *noopAdmitter) Estimate(h uint64) uint8             { return 0 }
func (f *noopAdmitter) Reset()                              {}
func (f *noopAdmitter) Clear()                              {}
func (f *noopAdmitter) Agings() int64                       { return 0 }
