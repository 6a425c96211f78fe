package conformance

// TestFile is one YAML scenario file: a named suite with its cases
type TestFile struct {
	Suite string     `yaml:"suite"`
	Tests []TestCase `yaml:"tests"`
}

// TestCase is a single language scenario. Exactly one of Expression,
// Template, or Program is set:
//   - Expression runs through the expression front end and checks the
//     rendered value
//   - Template runs through interpolation and checks the resulting string
//   - Program runs through the executor and checks the print output
type TestCase struct {
	Name       string `yaml:"name"`
	Expression string `yaml:"expression,omitempty"`
	Template   string `yaml:"template,omitempty"`
	Program    string `yaml:"program,omitempty"`
	Expect     Expect `yaml:"expect"`
}

// Expect describes the required outcome of a case
type Expect struct {
	Value  string `yaml:"value,omitempty"`  // rendered result of an expression or template
	Output string `yaml:"output,omitempty"` // accumulated print output of a program
	Error  string `yaml:"error,omitempty"`  // error kind name, e.g. "DivideByZero"

	// Unordered relaxes the output check to a line-set comparison, for
	// programs whose print order is not pinned (dict iteration)
	Unordered bool `yaml:"unordered,omitempty"`
}
