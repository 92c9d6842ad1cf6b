package cpu

// Stack is the call stack of return addresses.
type Stack struct {
	Limit int // Maximum depth, or 0 for unlimited.
	Data  []int
}

func (s *Stack) Push(value int) (ok bool) {
	if s.Full() {
		return
	}

	s.Data = append(s.Data, value)
	return true
}

func (s *Stack) Pop() (value int, ok bool) {
	value, ok = s.Peek()
	if ok {
		s.Data = s.Data[:len(s.Data)-1]
	}
	return
}

func (s *Stack) Empty() bool {
	return len(s.Data) == 0
}

func (s *Stack) Full() bool {
	return s.Limit > 0 && len(s.Data) >= s.Limit
}

func (s *Stack) Depth() int {
	return len(s.Data)
}

func (s *Stack) Peek() (value int, ok bool) {
	if s.Empty() {
		return
	}

	return s.Data[len(s.Data)-1], true
}

func (s *Stack) Reset() {
	if len(s.Data) > 0 {
		s.Data = s.Data[:0]
	}
}
