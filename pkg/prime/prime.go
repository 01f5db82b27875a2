package prime

// IsPrime reports whether n is a prime number using trial division
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for i := 3; i*i <= n; i += 2 {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Next returns the smallest prime that is greater than or equal to n.
// Anything below two yields two, so callers sizing a table never end
// up with a non-positive capacity
func Next(n int) int {
	if n <= 2 {
		return 2
	}
	for !IsPrime(n) {
		n++
	}
	return n
}
