/*
Package dsl provides a fluent Go API for building protocol graphs in code.

It is the programmatic counterpart of the JSON/YAML description format and is the
only way to express tau (silent) transitions, which the file format cannot carry.

	b := dsl.New("client")
	b.Initial("idle").Emit("hello", "waiting", "id:int")
	b.Normal("waiting").Receive("welcome", "done", "session:string")
	b.Final("done")

	g, err := b.Build()

Build validates every state and transition, then links incoming transitions.
The first error met while chaining is kept and returned by Build.
*/
package dsl
