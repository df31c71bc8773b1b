package domain

// Stack is one organ and everything applied to it, oldest first.
type Stack []Card

// Organ returns the organ card at the bottom of the stack.
func (s Stack) Organ() Card {
	if len(s) == 0 {
		return NoCard
	}
	return s[0]
}

func (s Stack) count(k Kind) int {
	n := 0
	for _, c := range s {
		if c.Kind() == k {
			n++
		}
	}
	return n
}

// Infected reports whether a virus sits on the organ.
func (s Stack) Infected() bool { return s.count(KindVirus) > 0 }

// Sound reports whether the stack counts towards victory: non-empty and virus free.
func (s Stack) Sound() bool { return len(s) > 0 && !s.Infected() }

// Immune reports whether two medicines protect the organ.
func (s Stack) Immune() bool {
	return len(s) > 2 && s.count(KindOrgan) == 1 && s.count(KindMedicine) == 2
}

func (s Stack) clone() Stack {
	return append(Stack(nil), s...)
}

// without returns a copy of s lacking the card at index i.
func (s Stack) without(i int) Stack {
	out := make(Stack, 0, len(s)-1)
	out = append(out, s[:i]...)
	return append(out, s[i+1:]...)
}

func cloneStacks(stacks []Stack) []Stack {
	out := make([]Stack, len(stacks))
	for i, s := range stacks {
		out[i] = s.clone()
	}
	return out
}
