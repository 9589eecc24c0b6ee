/*
Package domain contains the core model of protocompat.

A protocol is a Graph of States connected by Transitions. Transitions either emit
or receive a named message with typed parameters; silent (tau) transitions exist in
the model but are rejected by the compatibility engine. The package has no I/O and
no third-party dependencies, following the hexagonal layout of the rest of the module.

# Key Entities

  - Graph: states indexed by unique name, plus the Link pass that resolves targets.
  - State: kind (initial, normal, final) and ordered outgoing/incoming transitions.
  - Transition: name, kind, target state name and "name:type" parameters.
  - Run: a persisted sequence of compatibility matrices.
  - LifecycleHooks: callbacks fired by the engine for observability.
*/
package domain
