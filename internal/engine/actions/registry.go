package actions

import "coup/internal/engine"

// Registry returns an effect registry holding every standard action.
func Registry() *engine.EffectRegistry {
	reg := engine.NewEffectRegistry()
	reg.Register(Income{})
	reg.Register(ForeignAid{})
	reg.Register(Coup{})
	reg.Register(Tax{})
	reg.Register(Assassinate{})
	reg.Register(Steal{})
	reg.Register(Exchange{})
	return reg
}
