package cast_test

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/errors"
	"github.com/kbukum/streamcast/event"
	"github.com/kbukum/streamcast/logger"
	"github.com/kbukum/streamcast/testutil"
)

// source abstracts over the four fakes for tests that hold for every protocol.
type source struct {
	name      string
	input     any
	emit      func(v any)
	end       func()
	teardowns func() int
	live      func() int
}

func sources() []source {
	legacy := testutil.NewRxLegacySubject()
	rx := testutil.NewRxSubject()
	kefir := testutil.NewKefirStream()
	bacon := testutil.NewBaconBus()
	return []source{
		{"rx-legacy", legacy, legacy.OnNext, legacy.OnCompleted, legacy.Disposed, legacy.Observers},
		{"rx", rx, rx.Next, rx.Complete, rx.Unsubscribed, rx.Observers},
		{"kefir", kefir, kefir.Emit, kefir.End, kefir.Offs, kefir.Listeners},
		{"bacon", bacon, bacon.Push, bacon.End, bacon.Unsubs, bacon.Subscribers},
	}
}

func quiet() cast.Option {
	return cast.WithLogger(logger.Nop())
}

func TestCast_PreservesSequence(t *testing.T) {
	for _, src := range sources() {
		t.Run(src.name, func(t *testing.T) {
			c := testutil.NewCollector()
			cast.Cast(testutil.Target{}, src.input, quiet()).Subscribe(c.Sink)

			src.emit(1)
			src.emit(2)
			src.emit("three")
			src.end()

			want := []testutil.Recorded{testutil.Next(1), testutil.Next(2), testutil.Next("three"), testutil.End()}
			if diff := cmp.Diff(want, c.Recorded()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if got := src.teardowns(); got != 1 {
				t.Errorf("teardowns = %d, want 1", got)
			}
			if got := src.live(); got != 0 {
				t.Errorf("live subscriptions = %d, want 0", got)
			}
		})
	}
}

func TestCast_DoesNotSubscribeUntilSubscribed(t *testing.T) {
	for _, src := range sources() {
		t.Run(src.name, func(t *testing.T) {
			s := cast.Cast(testutil.Target{}, src.input, quiet())
			if got := src.live(); got != 0 {
				t.Fatalf("live subscriptions after Cast = %d, want 0", got)
			}
			unsub := s.Subscribe(testutil.NewCollector().Sink)
			if got := src.live(); got != 1 {
				t.Fatalf("live subscriptions after Subscribe = %d, want 1", got)
			}
			unsub()
		})
	}
}

func TestCast_EarlyStop(t *testing.T) {
	for _, src := range sources() {
		t.Run(src.name, func(t *testing.T) {
			c := testutil.NewCollector().StopAfter(2)
			unsub := cast.Cast(testutil.Target{}, src.input, quiet()).Subscribe(c.Sink)

			src.emit(1)
			src.emit(2)
			src.emit(3)
			src.end()

			want := []testutil.Recorded{testutil.Next(1), testutil.Next(2)}
			if diff := cmp.Diff(want, c.Recorded()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if got := src.teardowns(); got != 1 {
				t.Errorf("teardowns after stop = %d, want 1", got)
			}

			unsub()
			if got := src.teardowns(); got != 1 {
				t.Errorf("teardowns after unsubscribe = %d, want 1", got)
			}
		})
	}
}

func TestCast_UnsubscribeIsIdempotent(t *testing.T) {
	for _, src := range sources() {
		t.Run(src.name, func(t *testing.T) {
			c := testutil.NewCollector()
			unsub := cast.Cast(testutil.Target{}, src.input, quiet()).Subscribe(c.Sink)

			src.emit(1)
			unsub()
			unsub()
			src.emit(2)

			want := []testutil.Recorded{testutil.Next(1)}
			if diff := cmp.Diff(want, c.Recorded()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
			if got := src.teardowns(); got != 1 {
				t.Errorf("teardowns = %d, want 1", got)
			}
		})
	}
}

func TestCast_IndependentSubscribers(t *testing.T) {
	for _, src := range sources() {
		t.Run(src.name, func(t *testing.T) {
			s := cast.Cast(testutil.Target{}, src.input, quiet())
			first, second := testutil.NewCollector(), testutil.NewCollector()
			unsubFirst := s.Subscribe(first.Sink)
			s.Subscribe(second.Sink)

			src.emit(1)
			unsubFirst()
			src.emit(2)
			src.end()

			if diff := cmp.Diff([]testutil.Recorded{testutil.Next(1)}, first.Recorded()); diff != "" {
				t.Errorf("first subscriber (-want +got):\n%s", diff)
			}
			want := []testutil.Recorded{testutil.Next(1), testutil.Next(2), testutil.End()}
			if diff := cmp.Diff(want, second.Recorded()); diff != "" {
				t.Errorf("second subscriber (-want +got):\n%s", diff)
			}
			if got := src.teardowns(); got != 2 {
				t.Errorf("teardowns = %d, want 2", got)
			}
		})
	}
}

func TestCast_RxErrorsAreTerminal(t *testing.T) {
	boom := stderrors.New("boom")

	t.Run("rx-legacy", func(t *testing.T) {
		subj := testutil.NewRxLegacySubject()
		c := testutil.NewCollector()
		cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		subj.OnNext("a")
		subj.OnError(boom)

		want := []testutil.Recorded{testutil.Next("a"), testutil.Error("boom"), testutil.End()}
		if diff := cmp.Diff(want, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if err := c.Events()[1].Err(); err != boom {
			t.Errorf("error identity lost: got %v", err)
		}
		if subj.Disposed() != 1 {
			t.Errorf("disposed = %d, want 1", subj.Disposed())
		}
	})

	t.Run("rx", func(t *testing.T) {
		subj := testutil.NewRxSubject()
		c := testutil.NewCollector()
		cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		subj.Error(boom)

		want := []testutil.Recorded{testutil.Error("boom"), testutil.End()}
		if diff := cmp.Diff(want, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("stop on error skips end", func(t *testing.T) {
		subj := testutil.NewRxSubject()
		c := testutil.NewCollector().StopAfter(1)
		cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		subj.Error(boom)

		if diff := cmp.Diff([]testutil.Recorded{testutil.Error("boom")}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if subj.Unsubscribed() != 1 {
			t.Errorf("unsubscribed = %d, want 1", subj.Unsubscribed())
		}
	})
}

func TestCast_ReentrantCompletionOnTeardown(t *testing.T) {
	t.Run("dispose after stop", func(t *testing.T) {
		subj := testutil.NewRxLegacySubject().CompleteOnDispose()
		c := testutil.NewCollector().StopAfter(1)
		cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		subj.OnNext(1)

		if diff := cmp.Diff([]testutil.Recorded{testutil.Next(1)}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if subj.Disposed() != 1 {
			t.Errorf("disposed = %d, want 1", subj.Disposed())
		}
	})

	t.Run("dispose on unsubscribe", func(t *testing.T) {
		subj := testutil.NewRxLegacySubject().CompleteOnDispose()
		c := testutil.NewCollector()
		unsub := cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		subj.OnNext(1)
		unsub()
		unsub()

		if diff := cmp.Diff([]testutil.Recorded{testutil.Next(1)}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if subj.Disposed() != 1 {
			t.Errorf("disposed = %d, want 1", subj.Disposed())
		}
	})

	t.Run("modern unsubscribe", func(t *testing.T) {
		subj := testutil.NewRxSubject().CompleteOnUnsubscribe()
		c := testutil.NewCollector()
		unsub := cast.Cast(testutil.Target{}, subj, quiet()).Subscribe(c.Sink)
		unsub()

		if got := c.Len(); got != 0 {
			t.Errorf("got %d events, want none", got)
		}
	})
}

func TestCast_StopDuringSynchronousSubscribe(t *testing.T) {
	t.Run("cold rx-legacy", func(t *testing.T) {
		src := testutil.NewColdRxLegacy(1, 2, 3)
		c := testutil.NewCollector().StopAfter(1)
		cast.Cast(testutil.Target{}, src, quiet()).Subscribe(c.Sink)

		if diff := cmp.Diff([]testutil.Recorded{testutil.Next(1)}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if src.Disposed() != 1 {
			t.Errorf("disposed = %d, want 1", src.Disposed())
		}
	})

	t.Run("cold rx completes", func(t *testing.T) {
		src := testutil.NewColdRx(1, 2)
		c := testutil.NewCollector()
		cast.Cast(testutil.Target{}, src, quiet()).Subscribe(c.Sink)

		want := []testutil.Recorded{testutil.Next(1), testutil.Next(2), testutil.End()}
		if diff := cmp.Diff(want, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if src.Unsubscribed() != 1 {
			t.Errorf("unsubscribed = %d, want 1", src.Unsubscribed())
		}
	})

	t.Run("kefir property", func(t *testing.T) {
		prop := testutil.NewKefirProperty("beep")
		c := testutil.NewCollector().StopAfter(1)
		cast.Cast(testutil.Target{}, prop, quiet()).Subscribe(c.Sink)

		if diff := cmp.Diff([]testutil.Recorded{testutil.Initial("beep")}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if prop.Offs() != 1 || prop.Listeners() != 0 {
			t.Errorf("offs = %d, listeners = %d; want 1, 0", prop.Offs(), prop.Listeners())
		}
	})

	t.Run("bacon property", func(t *testing.T) {
		prop := testutil.NewBaconProperty("prop")
		c := testutil.NewCollector().StopAfter(1)
		cast.Cast(testutil.Target{}, prop, quiet()).Subscribe(c.Sink)

		if diff := cmp.Diff([]testutil.Recorded{testutil.Initial("prop")}, c.Recorded()); diff != "" {
			t.Errorf("events mismatch (-want +got):\n%s", diff)
		}
		if prop.Unsubs() != 1 || prop.Subscribers() != 0 {
			t.Errorf("unsubs = %d, subscribers = %d; want 1, 0", prop.Unsubs(), prop.Subscribers())
		}
	})
}

func TestCast_KefirPropertyScenario(t *testing.T) {
	prop := testutil.NewKefirProperty("beep")
	c := testutil.NewCollector()
	cast.Cast(testutil.Target{}, prop, quiet()).Subscribe(c.Sink)
	prop.End()

	want := []testutil.Recorded{testutil.Initial("beep"), testutil.End()}
	if diff := cmp.Diff(want, c.Recorded()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestCast_KefirErrorsAreNotTerminal(t *testing.T) {
	bus := testutil.NewKefirStream()
	c := testutil.NewCollector()
	cast.Cast(testutil.Target{}, bus, quiet()).Subscribe(c.Sink)

	boom := stderrors.New("boom")
	bus.Emit(1)
	bus.Error("bad")
	bus.Error(boom)
	bus.Emit(2)
	bus.End()

	want := []testutil.Recorded{
		testutil.Next(1),
		testutil.Error("SOURCE_ERROR: source reported an error: bad"),
		testutil.Error("boom"),
		testutil.Next(2),
		testutil.End(),
	}
	if diff := cmp.Diff(want, c.Recorded()); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	events := c.Events()
	if !errors.Is(events[1].Err(), errors.ErrCodeSourceError) {
		t.Errorf("expected SOURCE_ERROR, got %v", events[1].Err())
	}
	if payload, ok := errors.Payload(events[1].Err()); !ok || payload != "bad" {
		t.Errorf("Payload() = %v, %v; want bad, true", payload, ok)
	}
	if events[2].Err() != boom {
		t.Errorf("error payload identity lost: %v", events[2].Err())
	}
}

func TestCast_BaconScenario(t *testing.T) {
	bus := testutil.NewBaconBus()
	c := testutil.NewCollector()
	cast.Cast(testutil.Target{}, bus, quiet()).Subscribe(c.Sink)

	var forced []string
	thunk := func(v string) func() any {
		return func() any {
			forced = append(forced, v)
			return v
		}
	}
	bus.PushEvent(testutil.BaconInitial(thunk("prop")))
	bus.PushLazy(thunk("beep"))
	bus.Error(stderrors.New("bad"))
	bus.PushLazy(thunk("X"))
	bus.End()

	if len(forced) != 0 {
		t.Fatalf("values forced during translation: %v", forced)
	}
	want := []testutil.Recorded{
		testutil.Initial("prop"),
		testutil.Next("beep"),
		testutil.Error("bad"),
		testutil.Next("X"),
		testutil.End(),
	}
	if diff := cmp.Diff(want, c.Recorded()); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"prop", "beep", "X"}, forced); diff != "" {
		t.Errorf("forced values (-want +got):\n%s", diff)
	}
	if bus.Unsubs() != 1 {
		t.Errorf("unsubs = %d, want 1", bus.Unsubs())
	}
}

func TestCast_BaconSourceIgnoringItsOwnEnd(t *testing.T) {
	src := &testutil.BaconMock{}
	unsubsAtEnd := -1
	c := testutil.NewCollector()
	c.OnEnd(func() { unsubsAtEnd = src.Unsubs() })
	cast.Cast(testutil.Target{}, src, quiet()).Subscribe(c.Sink)

	if got := src.Send(testutil.BaconNext(func() any { return "a" })); got != event.More {
		t.Fatalf("reply to next = %v, want More", got)
	}
	if got := src.Send(testutil.BaconEnd()); got != event.NoMore {
		t.Errorf("reply to end = %v, want NoMore", got)
	}
	reply := src.Send(testutil.BaconNext(func() any { panic("value forced after end") }))
	if reply != event.NoMore {
		t.Errorf("reply after end = %v, want NoMore", reply)
	}

	if diff := cmp.Diff([]event.Kind{event.KindNext, event.KindEnd}, c.Kinds()); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
	if unsubsAtEnd != 1 {
		t.Errorf("unsubs when End was observed = %d, want 1", unsubsAtEnd)
	}
	if src.Unsubs() != 1 {
		t.Errorf("unsubs = %d, want 1", src.Unsubs())
	}
}

func TestCast_ValuesStayLazy(t *testing.T) {
	bus := testutil.NewBaconBus()
	c := testutil.NewCollector()
	cast.Cast(testutil.Target{}, bus, quiet()).Subscribe(c.Sink)

	bus.PushLazy(func() any { panic("value forced") })
	bus.End()

	if diff := cmp.Diff([]event.Kind{event.KindNext, event.KindEnd}, c.Kinds()); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestCast_BaconPredicateOrder(t *testing.T) {
	value := func() any { return "v" }
	tests := []struct {
		name string
		ev   testutil.BaconEvent
		want event.Kind
	}{
		{"initial before next", testutil.BaconEvent{Initial: true, Next: true, Thunk: value}, event.KindInitial},
		{"initial before end", testutil.BaconEvent{Initial: true, End: true, Thunk: value}, event.KindInitial},
		{"next before error", testutil.BaconEvent{Next: true, Error: true, Thunk: value}, event.KindNext},
		{"error before end", testutil.BaconEvent{Error: true, End: true, Cause: stderrors.New("e")}, event.KindError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := testutil.NewBaconBus()
			c := testutil.NewCollector()
			cast.Cast(testutil.Target{}, bus, quiet()).Subscribe(c.Sink)
			bus.PushEvent(tt.ev)

			kinds := c.Kinds()
			if len(kinds) != 1 || kinds[0] != tt.want {
				t.Errorf("kinds = %v, want [%v]", kinds, tt.want)
			}
		})
	}
}

func TestCast_UnknownEventsAreDropped(t *testing.T) {
	tests := []struct {
		name    string
		input   func() (any, func(), func())
		shape   string
		enabled bool
	}{
		{
			name: "kefir",
			input: func() (any, func(), func()) {
				bus := testutil.NewKefirStream()
				return bus,
					func() { bus.EmitEvent(cast.KefirEvent{Type: "weird"}) },
					func() { bus.Emit("after") }
			},
			shape:   "weird",
			enabled: true,
		},
		{
			name: "bacon",
			input: func() (any, func(), func()) {
				bus := testutil.NewBaconBus()
				return bus,
					func() { bus.PushEvent(testutil.BaconEvent{}) },
					func() { bus.Push("after") }
			},
			shape:   "testutil.BaconEvent",
			enabled: true,
		},
		{
			name: "bacon nil event",
			input: func() (any, func(), func()) {
				bus := testutil.NewBaconBus()
				return bus,
					func() { bus.PushEvent(nil) },
					func() { bus.Push("after") }
			},
			shape:   `"nil"`,
			enabled: true,
		},
		{
			name: "bacon typed nil event",
			input: func() (any, func(), func()) {
				bus := testutil.NewBaconBus()
				return bus,
					func() { bus.PushEvent((*testutil.BaconEvent)(nil)) },
					func() { bus.Push("after") }
			},
			shape:   "*testutil.BaconEvent",
			enabled: true,
		},
		{
			name: "kefir without diagnostics",
			input: func() (any, func(), func()) {
				bus := testutil.NewKefirStream()
				return bus,
					func() { bus.EmitEvent(cast.KefirEvent{Type: "weird"}) },
					func() { bus.Emit("after") }
			},
			enabled: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.NewWithWriter(&logger.Config{Level: "warn", Format: "json"}, "test", &buf)

			input, unknown, after := tt.input()
			c := testutil.NewCollector()
			cast.Cast(testutil.Target{}, input, cast.WithLogger(log), cast.WithDiagnostics(tt.enabled)).Subscribe(c.Sink)
			unknown()
			after()

			if diff := cmp.Diff([]testutil.Recorded{testutil.Next("after")}, c.Recorded()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}

			out := buf.String()
			if !tt.enabled {
				if out != "" {
					t.Errorf("expected no log output, got %q", out)
				}
				return
			}
			for _, want := range []string{"dropping unknown source event", tt.shape, string(errors.ErrCodeUnknownEvent)} {
				if !strings.Contains(out, want) {
					t.Errorf("log output %q missing %q", out, want)
				}
			}
		})
	}
}

func TestCast_Fallback(t *testing.T) {
	type payload struct{ A int }
	tests := []struct {
		name  string
		input any
	}{
		{"int", 42},
		{"string", "beep"},
		{"struct", payload{A: 1}},
		{"nil", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testutil.NewCollector()
			cast.Cast(testutil.Target{}, tt.input, quiet()).Subscribe(c.Sink)

			want := []testutil.Recorded{testutil.Next(tt.input), testutil.End()}
			if diff := cmp.Diff(want, c.Recorded()); diff != "" {
				t.Errorf("events mismatch (-want +got):\n%s", diff)
			}
		})
	}

	t.Run("func", func(t *testing.T) {
		called := false
		fn := func() { called = true }
		c := testutil.NewCollector()
		cast.Cast(testutil.Target{}, fn, quiet()).Subscribe(c.Sink)

		events := c.Events()
		if len(events) != 2 || !events[0].IsNext() || !events[1].IsEnd() {
			t.Fatalf("events = %v, want [Next End]", events)
		}
		if _, ok := events[0].Value().(func()); !ok {
			t.Errorf("value is %T, want func()", events[0].Value())
		}
		if called {
			t.Error("input func was called")
		}
	})

	t.Run("nil pointer", func(t *testing.T) {
		var bus *testutil.KefirBus
		c := testutil.NewCollector()
		cast.Cast(testutil.Target{}, bus, quiet()).Subscribe(c.Sink)

		events := c.Events()
		if len(events) != 2 || events[0].Value() != any(bus) {
			t.Fatalf("events = %v, want [Next(nil) End]", events)
		}
	})
}
