package dsl_test

import (
	"testing"

	"github.com/aretw0/protocompat/pkg/domain"
	"github.com/aretw0/protocompat/pkg/dsl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Basic(t *testing.T) {
	g, err := dsl.New("login").
		Initial("idle").Emit("credentials", "waiting", "user:string", "secret:string").Then().
		Normal("waiting").
		Receive("granted", "done", "token:string").
		Receive("denied", "idle_again").Then().
		Final("done").Then().
		Final("idle_again").Then().
		Build()
	require.NoError(t, err)

	assert.Equal(t, "login", g.Name())
	assert.Equal(t, []string{"idle", "waiting", "done", "idle_again"}, g.StateNames())
	assert.True(t, g.Linked())

	waiting := g.State("waiting")
	require.NotNil(t, waiting)
	assert.Len(t, waiting.Receptions(), 2)
	assert.Equal(t, 1, waiting.NumIncoming())

	creds := g.State("idle").OutgoingByName("credentials")
	require.NotNil(t, creds)
	assert.Equal(t, []string{"string"}, creds.DataTypes())
}

func TestBuilder_AddReturnsExistingState(t *testing.T) {
	b := dsl.New("g")
	first := b.Initial("a")
	again := b.Final("a")

	assert.Same(t, first, again)
	g, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, domain.StateInitial, g.State("a").Kind())
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("malformed param", func(t *testing.T) {
		_, err := dsl.New("g").
			Initial("a").Emit("m", "b", "oops").Then().
			Final("b").Then().
			Build()
		assert.ErrorIs(t, err, domain.ErrMalformedParameter)
	})

	t.Run("final with outgoing", func(t *testing.T) {
		_, err := dsl.New("g").
			Final("a").Emit("m", "a").Then().
			Build()
		assert.ErrorIs(t, err, domain.ErrFinalOutgoing)
	})

	t.Run("unknown target", func(t *testing.T) {
		_, err := dsl.New("g").
			Initial("a").Emit("m", "nowhere").Then().
			Build()
		assert.ErrorIs(t, err, domain.ErrUnresolvedState)
	})

	t.Run("must build panics", func(t *testing.T) {
		assert.Panics(t, func() {
			dsl.New("g").Initial("a").Receive("m", "a").Then().MustBuild()
		})
	})
}
