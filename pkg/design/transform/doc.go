// Package transform provides passes that rewrite a design before export.
//
// # Multiplier Bypass
//
// [MultBypass] maps generic multipliers onto the device's hard multiplier
// cell. Every "$mul" cell becomes "$__efx_mult" unless it carries a true
// "efx_mult_bypass" attribute, in which case it stays a soft "$mul":
//
//	res := transform.MultBypass(d)
//	fmt.Println(res.Mapped, res.Bypassed)
//
// Passes mutate the design in place. Run them before handing the design to
// the encoder, which treats its input as read-only.
package transform
