package service

// SyncStrategy is the explicit ordering policy between a local state change
// and its remote write. Each screen action names its policy instead of
// hard-coding the order per feature, so the asymmetry between likes
// (confirm first) and settings (apply first) stays visible and testable.
type SyncStrategy int

const (
	// ConfirmThenApply runs the remote write first and applies the local
	// change only on success. On failure local state is untouched.
	ConfirmThenApply SyncStrategy = iota

	// ApplyThenConfirm applies the local change immediately and fires the
	// remote write after. A remote failure is returned for surfacing but the
	// local change is kept.
	ApplyThenConfirm
)

func (s SyncStrategy) String() string {
	switch s {
	case ConfirmThenApply:
		return "confirm-then-apply"
	case ApplyThenConfirm:
		return "apply-then-confirm"
	}
	return "unknown"
}

// Run executes one apply-and-sync round under the strategy's ordering.
func (s SyncStrategy) Run(apply func(), remote func() error) error {
	if s == ApplyThenConfirm {
		apply()
		return remote()
	}
	if err := remote(); err != nil {
		return err
	}
	apply()
	return nil
}
