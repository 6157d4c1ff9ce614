package cast

import "reflect"

// Protocol identifies the streaming protocol an input implements.
type Protocol uint8

const (
	// ProtocolOpaque means the input is not a stream and is emitted as a single value.
	ProtocolOpaque Protocol = iota
	// ProtocolRxLegacy is RxJS 4 and older (RxLegacyObservable).
	ProtocolRxLegacy
	// ProtocolRx is RxJS 5 and newer (RxObservable).
	ProtocolRx
	// ProtocolKefir is Kefir (KefirObservable).
	ProtocolKefir
	// ProtocolBacon is Bacon (BaconObservable).
	ProtocolBacon
)

// String returns the protocol's short name, used in logs and metrics.
func (p Protocol) String() string {
	switch p {
	case ProtocolRxLegacy:
		return "rx-legacy"
	case ProtocolRx:
		return "rx"
	case ProtocolKefir:
		return "kefir"
	case ProtocolBacon:
		return "bacon"
	default:
		return "opaque"
	}
}

type detector struct {
	protocol Protocol
	matches  func(input any) bool
}

// detectors is tried in order and the first match wins. The order is part of
// the contract: a value implementing several shapes is always treated as the
// earliest one.
var detectors = []detector{
	{ProtocolRxLegacy, func(input any) bool { _, ok := input.(RxLegacyObservable); return ok }},
	{ProtocolRx, func(input any) bool { _, ok := input.(RxObservable); return ok }},
	{ProtocolKefir, func(input any) bool { _, ok := input.(KefirObservable); return ok }},
	{ProtocolBacon, func(input any) bool { _, ok := input.(BaconObservable); return ok }},
}

// Detect reports which protocol input implements. Nil values, including nil
// pointers and funcs boxed in an interface, are opaque.
func Detect(input any) Protocol {
	if isNil(input) {
		return ProtocolOpaque
	}
	for _, d := range detectors {
		if d.matches(input) {
			return d.protocol
		}
	}
	return ProtocolOpaque
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}
