package log

// TB is the part of testing.TB the Testing logger needs.
type TB interface {
	Errorf(string, ...any)
	Logf(string, ...any)
	Helper()
}

// Testing routes log output through a test's Logf and Errorf.
type Testing struct {
	TB
	Tags []any
}

func (l *Testing) Debug(m string, s ...any) {
	l.Helper()
	l.Logf("%s", tfmt("DEB ", m, s, l.Tags))
}

func (l *Testing) Error(m string, s ...any) {
	l.Helper()
	l.Errorf("%s", tfmt("ERR ", m, s, l.Tags))
}

func (l *Testing) With(tags ...any) Logger {
	t := make([]any, 0, len(tags)+len(l.Tags))
	t = append(t, tags...)
	t = append(t, l.Tags...)
	return &Testing{TB: l.TB, Tags: t}
}
