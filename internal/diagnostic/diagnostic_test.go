package diagnostic

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostics_AddAndMerge(t *testing.T) {
	var d Diagnostics

	d.AddError(CodeNotProxyable, "cannot wrap", "com.example.Outer.Inner", "")
	d.AddWarning(CodeUnspellableMember, "skipped", "pkg.T", "hidden")
	d.AddInfo("note", "fine", "", "")

	assert.True(t, d.HasErrors())
	assert.Equal(t, 3, d.Len())

	var other Diagnostics
	other.AddErrorWithSuggestions(CodeUnknownModifier, "unknown modifier \"pubic\"", "T", "m", []string{"public"})

	d.Merge(other)

	require.Len(t, d.Errors, 2)
	assert.Equal(t, []string{"public"}, d.Errors[1].Suggestions)
}

func TestDiagnostic_String(t *testing.T) {
	tests := []struct {
		name string
		diag Diagnostic
		want string
	}{
		{
			name: "message only",
			diag: Diagnostic{Message: "boom"},
			want: "boom",
		},
		{
			name: "code type member",
			diag: Diagnostic{Code: "c", Message: "boom", Type: "pkg.T", Member: "M"},
			want: "[pkg.T] M: [c] boom",
		},
		{
			name: "position and suggestions",
			diag: Diagnostic{
				Code: "unknown_kind", Message: "unknown kind \"clas\"", Position: "types.yaml",
				Suggestions: []string{"class"},
			},
			want: "types.yaml: [unknown_kind] unknown kind \"clas\" (did you mean class?)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.diag.String())
		})
	}
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics
	require.NoError(t, d.Error())

	d.AddError("a", "first", "", "")
	d.AddError("b", "second", "", "")

	assert.EqualError(t, d.Error(), "[a] first; [b] second")
}

func TestPrinter_Levels(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer

	p := NewPrinterTo(LevelQuiet, &out, &errOut)
	p.Info("hidden")
	p.Warn("hidden")
	p.Error("shown %d", 1)

	assert.Empty(t, out.String())
	assert.Equal(t, "[ERROR] shown 1\n", errOut.String())

	out.Reset()
	errOut.Reset()

	p = NewPrinterTo(LevelVerbose, &out, &errOut)
	p.Indent()
	p.Info("loaded %s", "pkg")
	p.Unindent()
	p.Verbose("detail")
	p.Debug("hidden")

	assert.Equal(t, "  [INFO] loaded pkg\n[VERBOSE] detail\n", out.String())
}

func TestPrinter_Report(t *testing.T) {
	color.NoColor = true

	var out, errOut bytes.Buffer

	var d Diagnostics
	d.AddError(CodeNotProxyable, "nope", "a.B", "")
	d.AddWarning(CodeUnspellableMember, "skipped", "a.C", "m")

	NewPrinterTo(LevelNormal, &out, &errOut).Report(&d)

	assert.Equal(t, "[ERROR] [a.B]: [not_proxyable] nope\n[WARN] [a.C] m: [unspellable_member] skipped\n", errOut.String())
}
