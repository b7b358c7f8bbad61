package mergers

// OverrideMerger is pure last-wins: the highest-priority pack's bytes
// pass through unmodified, with no content inspection. Used for icons
// and every generic file.
type OverrideMerger struct{}

// Merge returns the last (highest-priority) contribution's bytes.
func (m *OverrideMerger) Merge(contribs []Contribution) Result {
	if len(contribs) == 0 {
		return Result{}
	}
	return Result{Data: contribs[len(contribs)-1].Data}
}
