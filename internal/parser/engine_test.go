package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentic-research/codegraph/api"
)

func TestParseGoFunctionsAndMethods(t *testing.T) {
	src := []byte(`package main

import "fmt"

type Greeter struct {
	name string
}

func (g *Greeter) Greet() {
	fmt.Println(hello())
}

func hello() string {
	return "hi"
}
`)
	result, err := Parse("go", src)
	require.NoError(t, err)

	var names []string
	kindOf := map[string]api.SymbolKind{}
	for _, s := range result.Symbols {
		names = append(names, s.Name)
		kindOf[s.Name] = s.Kind
	}
	assert.Contains(t, names, "Greeter")
	assert.Contains(t, names, "Greet")
	assert.Contains(t, names, "hello")
	assert.Equal(t, api.KindStruct, kindOf["Greeter"])
	assert.Equal(t, api.KindMethod, kindOf["Greet"])
	assert.Equal(t, api.KindFunction, kindOf["hello"])

	var callTargets []string
	for _, e := range result.Edges {
		if e.Kind == api.EdgeCalls {
			callTargets = append(callTargets, e.TargetName)
		}
	}
	assert.Contains(t, callTargets, "Println")
	assert.Contains(t, callTargets, "hello")

	var greeter, greet api.ParsedSymbol
	for _, s := range result.Symbols {
		switch s.Name {
		case "Greeter":
			greeter = s
		case "Greet":
			greet = s
		}
	}
	require.Equal(t, "Greeter.Greet", greet.QualifiedName)
	require.GreaterOrEqual(t, greet.ParentIndex, 0)
	assert.Equal(t, greeter.Name, result.Symbols[greet.ParentIndex].Name)
}

func TestParseRustImplMethodResolvesParentByReceiver(t *testing.T) {
	src := []byte(`
struct Greeter {
    name: String,
}

impl Greeter {
    fn greet(&self) {
        println!("hi");
    }
}
`)
	result, err := Parse("rust", src)
	require.NoError(t, err)

	var greeter, greet api.ParsedSymbol
	for _, s := range result.Symbols {
		switch s.Name {
		case "Greeter":
			greeter = s
		case "greet":
			greet = s
		}
	}
	require.Equal(t, api.KindMethod, greet.Kind)
	require.GreaterOrEqual(t, greet.ParentIndex, 0)
	assert.Equal(t, greeter.Name, result.Symbols[greet.ParentIndex].Name)
}

func TestParsePythonClassAndMethod(t *testing.T) {
	src := []byte(`
class Animal:
    def speak(self):
        return noise()

def noise():
    return "..."
`)
	result, err := Parse("python", src)
	require.NoError(t, err)

	kindOf := map[string]api.SymbolKind{}
	for _, s := range result.Symbols {
		kindOf[s.Name] = s.Kind
	}
	assert.Equal(t, api.KindClass, kindOf["Animal"])
	assert.Equal(t, api.KindMethod, kindOf["speak"])
	assert.Equal(t, api.KindFunction, kindOf["noise"])
}

func TestParseUnsupportedLanguage(t *testing.T) {
	_, err := Parse("cobol", []byte("IDENTIFICATION DIVISION."))
	require.Error(t, err)
}
