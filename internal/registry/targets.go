package registry

import (
	"bossgym/internal/combat"
	"bossgym/internal/config"
)

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetBoss
	TargetAdd
)

// TargetRef names a target slot. Boss and Add are 0-based.
type TargetRef struct {
	Kind TargetKind
	Boss int
	Add  int
}

// EncodeTarget maps a reference to its index in the target head:
// 0 none, 1..N bosses, N+1+b*H+a adds.
func EncodeTarget(env config.Env, ref TargetRef) int {
	switch ref.Kind {
	case TargetBoss:
		return 1 + ref.Boss
	case TargetAdd:
		return 1 + env.BossCount + ref.Boss*env.AddsPerBoss + ref.Add
	}
	return 0
}

// DecodeTarget is the inverse of EncodeTarget. Indices outside the head decode
// to false.
func DecodeTarget(env config.Env, idx int) (TargetRef, bool) {
	switch {
	case idx == 0:
		return TargetRef{}, true
	case idx >= 1 && idx <= env.BossCount:
		return TargetRef{Kind: TargetBoss, Boss: idx - 1}, true
	case idx > env.BossCount && idx < env.TargetCount():
		off := idx - 1 - env.BossCount
		return TargetRef{Kind: TargetAdd, Boss: off / env.AddsPerBoss, Add: off % env.AddsPerBoss}, true
	}
	return TargetRef{}, false
}

// Resolve returns the live unit a reference points at.
func (r *Registry) Resolve(ref TargetRef) (*combat.Unit, bool) {
	switch ref.Kind {
	case TargetBoss:
		if b, ok := r.Boss(ref.Boss); ok {
			return b.Unit, true
		}
	case TargetAdd:
		if a, ok := r.Add(ref.Boss, ref.Add); ok {
			return a.Unit, true
		}
	}
	return nil, false
}

// RefOf finds the slot holding u. Units the registry does not hold map to TargetNone.
func (r *Registry) RefOf(u *combat.Unit) TargetRef {
	if u == nil {
		return TargetRef{}
	}
	for _, b := range r.bosses {
		if b.Unit == u {
			return TargetRef{Kind: TargetBoss, Boss: b.Index}
		}
	}
	for _, slots := range r.adds {
		for _, a := range slots {
			if a != nil && a.Unit == u {
				return TargetRef{Kind: TargetAdd, Boss: a.Boss, Add: a.Index}
			}
		}
	}
	return TargetRef{}
}

// Valid reports whether idx points at a live target right now. Index 0 is
// always valid.
func (r *Registry) Valid(idx int) bool {
	ref, ok := DecodeTarget(r.env, idx)
	if !ok {
		return false
	}
	if ref.Kind == TargetNone {
		return true
	}
	_, live := r.Resolve(ref)
	return live
}
