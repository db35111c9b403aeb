package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
)

type fake struct {
	name  string
	err   error
	trace *[]string
}

func (f fake) Run() { *f.trace = append(*f.trace, "run "+f.name) }
func (f fake) Shutdown(context.Context) error {
	*f.trace = append(*f.trace, "stop "+f.name)
	return f.err
}
func (f fake) String() string { return f.name }

func TestGroup(t *testing.T) {
	var trace []string
	g := Group{}
	g.Add(fake{name: "a", trace: &trace}, fake{name: "b", err: errors.New("boom"), trace: &trace},
		fake{name: "c", err: context.Canceled, trace: &trace})
	g.Start()
	err := g.Shutdown(context.Background())

	want := []string{"run a", "run b", "run c", "stop c", "stop b", "stop a"}
	if !reflect.DeepEqual(trace, want) {
		t.Errorf("trace = %v, want %v", trace, want)
	}
	if err == nil || !strings.Contains(err.Error(), "[b]") || strings.Contains(err.Error(), "[c]") {
		t.Errorf("Shutdown() = %v, want only b to fail", err)
	}
}
