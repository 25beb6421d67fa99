package lo

// Cond is a conditional statement that returns the trueValue if the condition is true and the falseValue otherwise.
func Cond[T any](condition bool, trueValue, falseValue T) T {
	if condition {
		return trueValue
	}

	return falseValue
}

// Return2 returns the second parameter out of a set of parameters.
func Return2[A any](_ any, a A, _ ...any) A {
	return a
}
