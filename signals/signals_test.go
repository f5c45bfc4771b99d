package signals

import (
	"errors"
	"os"
	"sync"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeTable records installs in memory and lets tests fire handlers
// synchronously with any context value.
type fakeTable struct {
	mu         sync.Mutex
	handlers   map[int]*Adapter
	interrupts map[int]bool
	installs   int
}

func newFakeTable() *fakeTable {
	return &fakeTable{handlers: map[int]*Adapter{}, interrupts: map[int]bool{}}
}

func (f *fakeTable) Install(number int, a *Adapter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[number] = a
	f.installs++
	return nil
}

func (f *fakeTable) Uninstall(number int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.handlers, number)
	return nil
}

func (f *fakeTable) Handler(number int) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.handlers[number]; ok {
		return a
	}
	return DispositionDefault
}

func (f *fakeTable) fire(t *testing.T, number int, frame any) (any, error) {
	t.Helper()
	f.mu.Lock()
	a := f.handlers[number]
	f.mu.Unlock()
	require.NotNil(t, a, "no handler installed for %d", number)
	return a.Invoke(number, frame)
}

// interruptTable additionally supports interrupt configuration.
type interruptTable struct {
	*fakeTable
}

func (t interruptTable) SetInterrupt(number int, allow bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.interrupts[number] = allow
	return nil
}

var (
	testInt  = NewSignal(2, "int")
	testQuit = NewSignal(3, "quit")
	testTerm = NewSignal(15, "term")
	testIOT  = NewSignal(6, "iot")
	testAbrt = NewSignal(6, "abrt")
)

func testRegistry() *Registry {
	return NewRegistryFrom(testInt, testQuit, testIOT, testAbrt, testTerm)
}

func testBinder(t Table) *Binder {
	return NewBinder(WithRegistry(testRegistry()), WithTable(t))
}

func TestSignal_NumberAndName_Cross(t *testing.T) {
	s := NewSignal(2, "int")
	assert.Equal(t, 2, s.Number())
	assert.Equal(t, "int", s.String())
	assert.Equal(t, syscall.Signal(2), s.Sys())
	assert.Equal(t, "Signal(number=2, name=int)", s.GoString())

	var _ os.Signal = s
}

func TestSignal_Equal_Cross(t *testing.T) {
	s := NewSignal(2, "int")
	other := NewSignal(2, "interrupt")

	cases := []struct {
		name  string
		other any
		want  bool
	}{
		{"same number signal", other, true},
		{"pointer signal", &other, true},
		{"nil pointer", (*Signal)(nil), false},
		{"different signal", testTerm, false},
		{"int", 2, true},
		{"int64", int64(2), true},
		{"uint8", uint8(2), true},
		{"syscall", syscall.Signal(2), true},
		{"wrong int", 3, false},
		{"name", "int", true},
		{"upper name", "INT", false},
		{"float", 2.0, false},
		{"nil", nil, false},
		{"slice", []int{2}, false},
		{"struct", struct{}{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.Equal(tc.other))
		})
	}
}

func TestRegistry_LookupDuality_Cross(t *testing.T) {
	r := testRegistry()

	byNum, err := r.Lookup(15)
	require.NoError(t, err)
	byName, err := r.Lookup("term")
	require.NoError(t, err)

	assert.Equal(t, byNum, byName)
	assert.Equal(t, 15, byNum.Number())
	assert.Equal(t, "term", byName.String())

	viaSys, err := r.Lookup(syscall.Signal(15))
	require.NoError(t, err)
	assert.True(t, viaSys.Equal(byNum))

	viaSig, err := r.Lookup(testTerm)
	require.NoError(t, err)
	assert.Equal(t, byNum, viaSig)
}

func TestRegistry_AliasesLastWins_Cross(t *testing.T) {
	r := testRegistry()

	iot, ok := r.Get("iot")
	require.True(t, ok)
	abrt, ok := r.Get("abrt")
	require.True(t, ok)
	assert.True(t, iot.Equal(abrt))

	byNum, ok := r.ByNumber(6)
	require.True(t, ok)
	assert.Equal(t, "abrt", byNum.String())

	assert.Equal(t, 4, r.Len())
	assert.Equal(t, []string{"abrt", "int", "iot", "quit", "term"}, r.Names())

	nums := make([]int, 0, r.Len())
	for _, s := range r.Signals() {
		nums = append(nums, s.Number())
	}
	assert.Equal(t, []int{2, 3, 6, 15}, nums)
}

func TestRegistry_UnknownKey_Cross(t *testing.T) {
	r := testRegistry()
	before := r.Names()

	for _, key := range []any{-999, "nope", 3.5, nil, []byte("int")} {
		_, err := r.Lookup(key)
		require.Error(t, err, "key %v", key)
		assert.True(t, errors.Is(err, ErrUnknownSignal))

		var unknown *UnknownSignalError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, key, unknown.Key)
	}

	assert.Equal(t, before, r.Names())
	assert.Panics(t, func() { r.MustGet("nope") })
}

func TestRegistry_NamedAccessors_Cross(t *testing.T) {
	r := testRegistry()
	assert.Equal(t, 2, r.Int().Number())
	assert.Equal(t, 3, r.Quit().Number())
	assert.Equal(t, 15, r.Term().Number())
	assert.Panics(t, func() { r.Hup() })
}

func TestRegistry_DiscoveredStandardSignals_Cross(t *testing.T) {
	r := NewRegistry()

	for name, num := range map[string]syscall.Signal{
		"int":  syscall.SIGINT,
		"quit": syscall.SIGQUIT,
		"term": syscall.SIGTERM,
		"hup":  syscall.SIGHUP,
		"kill": syscall.SIGKILL,
	} {
		s, err := r.Lookup(name)
		require.NoError(t, err, name)
		assert.Equal(t, int(num), s.Number(), name)

		back, err := r.Lookup(int(num))
		require.NoError(t, err)
		assert.Equal(t, name, back.String())
	}
	for _, name := range r.Names() {
		assert.Equal(t, canonicalName(name), name, "names are lowercase without prefix")
	}
}

func TestDefaultRegistry_Singleton_Cross(t *testing.T) {
	assert.Same(t, DefaultRegistry(), DefaultRegistry())
}

func TestCanonicalName_Cross(t *testing.T) {
	assert.Equal(t, "int", canonicalName("SIGINT"))
	assert.Equal(t, "rtmin", canonicalName("SIGRTMIN"))
	assert.Equal(t, "usr1", canonicalName("SIGUSR1"))
}

func TestAdapter_NoArgs_Cross(t *testing.T) {
	a, err := NewAdapter(testRegistry(), func() string { return "result" }, false, false)
	require.NoError(t, err)

	got, err := a.Invoke(2, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "result", got)
}

func TestAdapter_TakesContext_Cross(t *testing.T) {
	a, err := NewAdapter(testRegistry(), func(ctx any) any { return ctx }, false, true)
	require.NoError(t, err)

	got, err := a.Invoke(2, "ctx123")
	require.NoError(t, err)
	assert.Equal(t, "ctx123", got)
}

func TestAdapter_TakesSignal_Cross(t *testing.T) {
	a, err := NewAdapter(testRegistry(), func(s Signal) Signal { return s }, true, false)
	require.NoError(t, err)

	got, err := a.Invoke(15, nil)
	require.NoError(t, err)
	assert.True(t, got.(Signal).Equal(testTerm))
}

func TestAdapter_TakesBoth_Order_Cross(t *testing.T) {
	var gotSig os.Signal
	var gotFrame *Frame
	fn := func(s os.Signal, f *Frame) error {
		gotSig, gotFrame = s, f
		return nil
	}
	a, err := NewAdapter(testRegistry(), fn, true, true)
	require.NoError(t, err)

	frame := &Frame{Seq: 7}
	_, err = a.Invoke(3, frame)
	require.NoError(t, err)
	assert.Equal(t, testQuit, gotSig)
	assert.Same(t, frame, gotFrame)

	takesSig, takesCtx := a.Wants()
	assert.True(t, takesSig)
	assert.True(t, takesCtx)
}

func TestAdapter_NilContext_Cross(t *testing.T) {
	a, err := NewAdapter(testRegistry(), func(f *Frame) bool { return f == nil }, false, true)
	require.NoError(t, err)
	got, err := a.Invoke(2, nil)
	require.NoError(t, err)
	assert.Equal(t, true, got)

	b, err := NewAdapter(testRegistry(), func(n int) {}, false, true)
	require.NoError(t, err)
	_, err = b.Invoke(2, nil)
	assert.ErrorIs(t, err, ErrBadHandler)
	_, err = b.Invoke(2, "not an int")
	assert.ErrorIs(t, err, ErrBadHandler)
}

func TestAdapter_Results_Cross(t *testing.T) {
	boom := errors.New("boom")
	r := testRegistry()

	onlyErr, err := NewAdapter(r, func() error { return boom }, false, false)
	require.NoError(t, err)
	v, err := onlyErr.Invoke(2, nil)
	assert.Nil(t, v)
	assert.ErrorIs(t, err, boom)

	nilErr, err := NewAdapter(r, func() error { return nil }, false, false)
	require.NoError(t, err)
	_, err = nilErr.Invoke(2, nil)
	assert.NoError(t, err)

	pair, err := NewAdapter(r, func() (int, error) { return 42, boom }, false, false)
	require.NoError(t, err)
	v, err = pair.Invoke(2, nil)
	assert.Equal(t, 42, v)
	assert.ErrorIs(t, err, boom)
}

func TestAdapter_UnknownNumber_Cross(t *testing.T) {
	called := false
	a, err := NewAdapter(testRegistry(), func() { called = true }, false, false)
	require.NoError(t, err)

	_, err = a.Invoke(-999, nil)
	assert.ErrorIs(t, err, ErrUnknownSignal)
	assert.False(t, called)
}

func TestAdapter_PanicsPropagate_Cross(t *testing.T) {
	a, err := NewAdapter(testRegistry(), func() { panic("handler bug") }, false, false)
	require.NoError(t, err)
	assert.PanicsWithValue(t, "handler bug", func() { _, _ = a.Invoke(2, nil) })
}

func TestAdapter_RejectsBadShapes_Cross(t *testing.T) {
	r := testRegistry()
	cases := []struct {
		name     string
		fn       any
		sig, ctx bool
	}{
		{"not a func", 42, false, false},
		{"nil func", (func())(nil), false, false},
		{"untyped nil", nil, false, false},
		{"too many params", func(Signal) {}, false, false},
		{"too few params", func() {}, true, true},
		{"signal param wrong type", func(int) {}, true, false},
		{"variadic", func(...any) {}, false, true},
		{"second result not error", func() (int, int) { return 0, 0 }, false, false},
		{"three results", func() (int, int, error) { return 0, 0, nil }, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewAdapter(r, tc.fn, tc.sig, tc.ctx)
			assert.ErrorIs(t, err, ErrBadHandler)
		})
	}
}

func TestBind_DefaultsInstallZeroArgHandler_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	calls := 0
	fn := func() string { calls++; return "result" }
	ret, err := Bind(b, testInt, fn)
	require.NoError(t, err)

	// Returned handler is the one given and still callable.
	assert.Equal(t, "result", ret())
	assert.Equal(t, 1, calls)

	got, err := tbl.fire(t, 2, struct{}{})
	require.NoError(t, err)
	assert.Equal(t, "result", got)
	assert.Equal(t, 2, calls)
	assert.Empty(t, tbl.interrupts)
}

func TestBind_TakesContext_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	_, err := Bind(b, testInt, func(ctx string) string { return ctx }, TakesContext())
	require.NoError(t, err)

	got, err := tbl.fire(t, 2, "ctx123")
	require.NoError(t, err)
	assert.Equal(t, "ctx123", got)
}

func TestBind_TakesSignal_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	_, err := Bind(b, testTerm, func(s Signal) Signal { return s }, TakesSignal())
	require.NoError(t, err)

	got, err := tbl.fire(t, 15, nil)
	require.NoError(t, err)
	assert.True(t, testTerm.Equal(got))
}

func TestBind_TakesBoth_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	type pair struct {
		sig Signal
		ctx any
	}
	_, err := Bind(b, testQuit, func(s Signal, ctx any) pair { return pair{s, ctx} }, TakesSignal(), TakesContext())
	require.NoError(t, err)

	got, err := tbl.fire(t, 3, "frame")
	require.NoError(t, err)
	assert.Equal(t, pair{testQuit, "frame"}, got)
}

func TestBind_LatestWins_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	_, err := Bind(b, testInt, func() string { return "first" })
	require.NoError(t, err)
	_, err = Bind(b, testInt, func() string { return "second" })
	require.NoError(t, err)

	got, err := tbl.fire(t, 2, nil)
	require.NoError(t, err)
	assert.Equal(t, "second", got)
	assert.Equal(t, 2, tbl.installs)
}

func TestBind_AllowInterruptFalse_Configures_Cross(t *testing.T) {
	tbl := interruptTable{newFakeTable()}
	b := testBinder(tbl)

	_, err := Bind(b, testTerm, func() {}, AllowInterrupt(false))
	require.NoError(t, err)
	allow, ok := tbl.interrupts[15]
	require.True(t, ok, "SetInterrupt not called")
	assert.False(t, allow)

	_, err = Bind(b, testInt, func() {})
	require.NoError(t, err)
	_, err = Bind(b, testQuit, func() {}, AllowInterrupt(true))
	require.NoError(t, err)
	assert.NotContains(t, tbl.interrupts, 2)
	assert.NotContains(t, tbl.interrupts, 3)
}

func TestBind_AllowInterruptUnsupported_Skips_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	_, err := Bind(b, testTerm, func() {}, AllowInterrupt(false))
	require.NoError(t, err)
	assert.IsType(t, &Adapter{}, b.Handler(testTerm))
}

func TestBind_BadShapeInstallsNothing_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	_, err := Bind(b, testInt, func(s Signal) {})
	assert.ErrorIs(t, err, ErrBadHandler)
	assert.Equal(t, 0, tbl.installs)
	assert.Equal(t, DispositionDefault, b.Handler(testInt))
}

func TestUsing_OptionsFirst_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	onQuit := Using[func(Signal) string](b, testQuit, TakesSignal())
	fn, err := onQuit(func(s Signal) string { return "got " + s.String() })
	require.NoError(t, err)
	assert.Equal(t, "got x", fn(NewSignal(99, "x")))

	got, err := tbl.fire(t, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, "got quit", got)
}

func TestHandlerAndUnbind_Cross(t *testing.T) {
	tbl := newFakeTable()
	b := testBinder(tbl)

	assert.Equal(t, DispositionDefault, b.Handler(testInt))
	fn := func() {}
	_, err := Bind(b, testInt, fn)
	require.NoError(t, err)

	a, ok := b.Handler(testInt).(*Adapter)
	require.True(t, ok)
	assert.NotNil(t, a.Func())
	assert.Contains(t, a.String(), "signal=false")

	require.NoError(t, b.Unbind(testInt))
	assert.Equal(t, DispositionDefault, b.Handler(testInt))
}

func TestNewBinder_Defaults_Cross(t *testing.T) {
	b := NewBinder()
	assert.Same(t, DefaultRegistry(), b.Registry())
	assert.IsType(t, &RuntimeTable{}, b.Table())
	assert.Same(t, Default(), Default())
}

func TestConvenienceLookup_Cross(t *testing.T) {
	s, err := Lookup("int")
	require.NoError(t, err)
	assert.Equal(t, int(syscall.SIGINT), s.Number())
	assert.Equal(t, s, MustLookup(int(syscall.SIGINT)))
	assert.Panics(t, func() { MustLookup(-999) })
}
