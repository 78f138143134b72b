package engine

import "github.com/knieriem/dmp"

// SetText replaces the entire buffer content, delivering the change to
// observers as a sequence of minimal edits rather than a wholesale
// reset. The old and new content are diffed; each changed region becomes
// one ordinary edit notification, so attached indexes patch
// incrementally instead of rebuilding. Use Reset to force the O(n)
// rebuild path instead.
func (e *Engine) SetText(text string) error {
	text = e.normalizeLineEndings(text)
	old := e.Text()
	if old == text {
		return nil
	}

	diffs := dmp.DiffMain(old, text, true, dmp.DefaultTimeout)

	// Walk the diff, applying each changed region at its offset in the
	// evolving buffer. Segments are rune-aligned, so the byte lengths
	// are always valid offsets.
	off := 0
	for i := 0; i < len(diffs); i++ {
		d := diffs[i]
		switch d.Op {
		case dmp.Equal:
			off += len(d.Text)
		case dmp.Delete:
			// Coalesce a delete/insert pair into a single replace so
			// observers see one edit, not two.
			ins := ""
			if i+1 < len(diffs) && diffs[i+1].Op == dmp.Insert {
				ins = diffs[i+1].Text
				i++
			}
			if err := e.Replace(off, off+len(d.Text), ins); err != nil {
				return err
			}
			off += len(ins)
		case dmp.Insert:
			if err := e.Replace(off, off, d.Text); err != nil {
				return err
			}
			off += len(d.Text)
		}
	}
	return nil
}
