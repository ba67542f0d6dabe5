package cli

import tea "github.com/charmbracelet/bubbletea"

// viewStack holds the open views. The first entry is the tracker and is
// never popped.
type viewStack []View

func (s viewStack) top() View {
	if len(s) == 0 {
		return nil
	}
	return s[len(s)-1]
}

func (s *viewStack) push(v View) {
	*s = append(*s, v)
}

// pop drops the top view unless only the home view is left.
func (s *viewStack) pop() bool {
	if len(*s) <= 1 {
		return false
	}
	*s = (*s)[:len(*s)-1]
	return true
}

// updateTop sends msg to the top view and stores the result.
func (s viewStack) updateTop(msg tea.Msg) tea.Cmd {
	if len(s) == 0 {
		return nil
	}
	updated, cmd := s[len(s)-1].Update(msg)
	s[len(s)-1] = updated.(View)
	return cmd
}

// updateAll sends msg to every view, bottom to top.
func (s viewStack) updateAll(msg tea.Msg) tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(s))
	for i, v := range s {
		updated, cmd := v.Update(msg)
		s[i] = updated.(View)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (s viewStack) titles() []string {
	var out []string
	for _, v := range s {
		if t := v.Title(); t != "" {
			out = append(out, t)
		}
	}
	return out
}
