/*

Constant propagation

Textual IR ->
	parse ->
Intermediate Representation (ir) ->
	constprop (fold to a fixed point, report evaluation errors to diag) ->
Intermediate Representation (ir) ->
	format ->
Textual IR

Folding of a single instruction is done by the fold package.
Builtin signatures are described in the builtin registry.

*/
package compiler
