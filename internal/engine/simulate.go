package engine

// SimulateFeedback returns the feedback guess would get if secret were the
// answer. Greens are assigned first, then the remaining occurrences of each
// letter in the secret are handed out as yellows left to right; anything left
// over is gray. guess and secret must be the same length.
func SimulateFeedback(guess, secret string) Feedback {
	f := make(Feedback, len(guess))
	simulate(guess, secret, f)
	return f
}

// simulatePattern is SimulateFeedback without the allocation.
func simulatePattern(guess, secret string) Pattern {
	var buf [maxWordLength]Result
	f := Feedback(buf[:len(guess)])
	simulate(guess, secret, f)
	return f.Code()
}

func simulate(guess, secret string, f Feedback) {
	var remaining [alphabet]int
	for i := 0; i < len(guess); i++ {
		g, s := letterIndex(guess[i]), letterIndex(secret[i])
		if g == s && g >= 0 {
			f[i] = Correct
			continue
		}
		f[i] = Absent
		if s >= 0 {
			remaining[s]++
		}
	}
	for i := 0; i < len(guess); i++ {
		if f[i] == Correct {
			continue
		}
		if g := letterIndex(guess[i]); g >= 0 && remaining[g] > 0 {
			f[i] = Present
			remaining[g]--
		}
	}
}
