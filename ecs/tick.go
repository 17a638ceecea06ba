package ecs

// Tick is the change-detection clock value. It is a wrapping counter advanced
// once per scheduler pass; component and resource writes are stamped with the
// tick at which they happened.
type Tick uint32

// maxTickAge is the largest distance between two ticks that can be compared
// meaningfully. Stamps older than this are clamped by World.CheckTicks so the
// wrapping comparison below stays correct in long-running processes.
const maxTickAge = 1<<31 - 1

// newerThan reports whether t falls inside the half-open window
// (last, current]. All subtraction wraps modulo 2^32, so the comparison
// survives counter wraparound as long as stamps are no older than maxTickAge.
func (t Tick) newerThan(last, current Tick) bool {
	return uint32(current-t) < uint32(current-last)
}

// clamp pins t to the oldest representable age relative to current.
func (t *Tick) clamp(current Tick) {
	if uint32(current-*t) > maxTickAge {
		*t = current - maxTickAge
	}
}
