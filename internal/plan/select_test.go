package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"weakwrap-generator/internal/model"
)

func selectedNames(members []model.MemberDescriptor) []string {
	names := make([]string, len(members))
	for i, m := range members {
		names[i] = m.Name
	}

	return names
}

func TestSelect_RootMembersOnly(t *testing.T) {
	td := classDescriptor("com.example", "Empty")

	got := Select(td)

	assert.Equal(t, []string{"hashCode", "equals", "toString"}, selectedNames(got))
}

func TestSelect_PreservesOrder(t *testing.T) {
	td := classDescriptor("com.example", "Service",
		method("zeta", publicM, voidT),
		method("alpha", model.ModifierSet(0), voidT),
		method("mid", model.NewModifierSet(model.Public, model.Abstract), intT),
	)

	got := Select(td)

	assert.Equal(t, []string{"hashCode", "equals", "toString", "zeta", "alpha", "mid"}, selectedNames(got))
}

func TestSelect_NeverSelectsPrivateStaticFinal(t *testing.T) {
	excluded := []model.Modifier{model.Private, model.Static, model.Final}

	var members []model.MemberDescriptor

	// every combination of modifiers, each as its own member
	all := model.AllModifiers()
	for bits := 0; bits < 1<<len(all); bits++ {
		var mods model.ModifierSet
		for i, m := range all {
			if bits&(1<<i) != 0 {
				mods = mods.With(m)
			}
		}

		m := method("m", mods, voidT)
		m.DeclaringPackage = "com.example"
		members = append(members, m)
	}

	td := classDescriptor("com.example", "Everything", members...)

	for _, m := range Select(td) {
		for _, mod := range excluded {
			assert.False(t, m.Modifiers.Has(mod), "selected member has %s: %s", mod, m.Modifiers)
		}
	}
}

func TestIsEligible_Protected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		declaring string
		target    string
		want      bool
	}{
		{name: "same package", declaring: "com.example", target: "com.example", want: true},
		{name: "other package", declaring: "com.other", target: "com.example", want: false},
		{name: "sub package is another package", declaring: "com.example.sub", target: "com.example", want: false},
		{name: "default package", declaring: "", target: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := method("hook", model.NewModifierSet(model.Protected), voidT)
			m.DeclaringPackage = tt.declaring

			assert.Equal(t, tt.want, IsEligible(&m, tt.target))
		})
	}
}

func TestSelect_ProtectedRootMembersInSamePackage(t *testing.T) {
	td := classDescriptor("java.lang", "Thing")

	got := Select(td)

	assert.Equal(t, []string{"hashCode", "equals", "toString", "clone", "finalize"}, selectedNames(got))
}
