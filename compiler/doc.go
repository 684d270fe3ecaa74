/*

Process of compilation

Program Text ->
	parse ->
Instruction Tree (ir) ->
	back (scope, stack depth tracking) ->
Tape Machine Code

Tape machine code is + - < > [ ] . , and anything else is a comment.
Generated code keeps the pointer on the stack top,
the stack grows to the right, variables live at the bottom.

*/
package compiler
