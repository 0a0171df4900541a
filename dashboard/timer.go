package dashboard

import "time"

// CopiedResetDelay is how long a "Copied!" confirmation stays visible.
const CopiedResetDelay = 2 * time.Second

// Timer is the part of *time.Timer the dashboard uses.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f to run after d, like time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// flag is a boolean that reverts to false a fixed time after it was last raised.
type flag struct {
	after AfterFunc
	timer Timer
	gen   uint64
	on    bool
}

// raise sets the flag and schedules the reset. lock guards the flag's owner.
func (f *flag) raise(lock func(), unlock func()) {
	if f.timer != nil {
		f.timer.Stop()
	}
	f.on = true
	f.gen++
	gen := f.gen
	f.timer = f.after(CopiedResetDelay, func() {
		lock()
		defer unlock()
		if f.gen == gen {
			f.on = false
		}
	})
}
