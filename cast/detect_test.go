package cast_test

import (
	"testing"

	"github.com/kbukum/streamcast/cast"
	"github.com/kbukum/streamcast/testutil"
)

// Values that carry more than one protocol shape at once. Method sets that
// would collide (the two Rx generations and Bacon all define Subscribe) can't
// be combined in Go, so these cover every pairing the type system allows.
type legacyAndKefir struct {
	*testutil.RxLegacySubject
	*testutil.KefirBus
}

type rxAndKefir struct {
	*testutil.RxSubject
	*testutil.KefirBus
}

type kefirAndBacon struct {
	*testutil.KefirBus
	*testutil.BaconBus
}

// Partial shapes.
type onAnyOnly struct{}

func (onAnyOnly) OnAny(cast.KefirListener) {}

type rxWithoutMarker struct{}

func (rxWithoutMarker) Subscribe(func(any), func(error), func()) cast.Disposable { return nil }

type baconWithoutOnValue struct{}

func (baconWithoutOnValue) Subscribe(func(cast.BaconEvent) bool) func() { return func() {} }

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		input any
		want  cast.Protocol
	}{
		{"legacy rx", testutil.NewRxLegacySubject(), cast.ProtocolRxLegacy},
		{"modern rx", testutil.NewRxSubject(), cast.ProtocolRx},
		{"kefir", testutil.NewKefirStream(), cast.ProtocolKefir},
		{"bacon", testutil.NewBaconBus(), cast.ProtocolBacon},

		{"legacy rx wins over kefir", legacyAndKefir{testutil.NewRxLegacySubject(), testutil.NewKefirStream()}, cast.ProtocolRxLegacy},
		{"modern rx wins over kefir", rxAndKefir{testutil.NewRxSubject(), testutil.NewKefirStream()}, cast.ProtocolRx},
		{"kefir wins over bacon", kefirAndBacon{testutil.NewKefirStream(), testutil.NewBaconBus()}, cast.ProtocolKefir},

		{"onAny without offAny", onAnyOnly{}, cast.ProtocolOpaque},
		{"rx subscribe without marker", rxWithoutMarker{}, cast.ProtocolOpaque},
		{"bacon subscribe with wrong signature", baconWithoutOnValue{}, cast.ProtocolOpaque},

		{"int", 42, cast.ProtocolOpaque},
		{"string", "beep", cast.ProtocolOpaque},
		{"struct", struct{ A int }{1}, cast.ProtocolOpaque},
		{"func", func() {}, cast.ProtocolOpaque},
		{"nil", nil, cast.ProtocolOpaque},
		{"nil kefir bus", (*testutil.KefirBus)(nil), cast.ProtocolOpaque},
		{"nil bacon bus", (*testutil.BaconBus)(nil), cast.ProtocolOpaque},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cast.Detect(tt.input); got != tt.want {
				t.Errorf("Detect() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProtocol_String(t *testing.T) {
	tests := map[cast.Protocol]string{
		cast.ProtocolOpaque:   "opaque",
		cast.ProtocolRxLegacy: "rx-legacy",
		cast.ProtocolRx:       "rx",
		cast.ProtocolKefir:    "kefir",
		cast.ProtocolBacon:    "bacon",
	}
	for p, want := range tests {
		if got := p.String(); got != want {
			t.Errorf("Protocol(%d).String() = %q, want %q", p, got, want)
		}
	}
}
