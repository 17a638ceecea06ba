// Command weft-gen emits a synthetic component and system corpus for the
// stress test binary. Systems pair components off in registration order, so
// with enough components the first half of the systems have disjoint
// footprints and the schedule gets real parallelism, while the wrap-around
// systems conflict with earlier ones and force extra waves.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"

	"golang.org/x/tools/imports"
)

func main() {
	componentCount := flag.Int("components", 16, "Number of component types to generate.")
	systemCount := flag.Int("systems", 12, "Number of systems to generate.")
	outPath := flag.String("out", "cmd/ecs-stress/generated.go", "Output file path.")
	flag.Parse()

	if *componentCount < 2 {
		fmt.Fprintln(os.Stderr, "need at least 2 components")
		os.Exit(1)
	}

	src := generate(*componentCount, *systemCount)

	formatted, err := imports.Process(*outPath, src, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generated code does not parse: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPath, formatted, 0o644); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s: %d components, %d systems\n", *outPath, *componentCount, *systemCount)
}

func generate(components, systems int) []byte {
	var b bytes.Buffer

	fmt.Fprintln(&b, "// Code generated by weft-gen; DO NOT EDIT.")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "package main")
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, `import (`)
	fmt.Fprintln(&b, `	"math/rand"`)
	fmt.Fprintln(&b)
	fmt.Fprintln(&b, `	"github.com/plus3/weft/ecs"`)
	fmt.Fprintln(&b, `)`)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "const generatedComponentCount = %d\n", components)
	fmt.Fprintf(&b, "const generatedSystemCount = %d\n", systems)
	fmt.Fprintln(&b)

	for i := 0; i < components; i++ {
		fmt.Fprintf(&b, "type GenComp%02d struct{ A, B float32 }\n", i)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "func RegisterAllGeneratedComponents(w *ecs.World) {")
	for i := 0; i < components; i++ {
		fmt.Fprintf(&b, "\tecs.RegisterComponent[GenComp%02d](w)\n", i)
	}
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "var genFactories = []func(r *rand.Rand) any{")
	for i := 0; i < components; i++ {
		fmt.Fprintf(&b, "\tfunc(r *rand.Rand) any { return GenComp%02d{A: r.Float32(), B: r.Float32()} },\n", i)
	}
	fmt.Fprintln(&b, "}")
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, "func SpawnRandomEntity(w *ecs.World, r *rand.Rand, numComponents int) ecs.Entity {")
	fmt.Fprintln(&b, "\tcomps := make([]any, 0, numComponents)")
	fmt.Fprintln(&b, "\tfor _, i := range r.Perm(len(genFactories))[:numComponents] {")
	fmt.Fprintln(&b, "\t\tcomps = append(comps, genFactories[i](r))")
	fmt.Fprintln(&b, "\t}")
	fmt.Fprintln(&b, "\treturn w.Spawn(comps...)")
	fmt.Fprintln(&b, "}")

	for i := 0; i < systems; i++ {
		ca := (2 * i) % components
		cb := (2*i + 1) % components
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "type GenSystem%02d struct {\n", i)
		fmt.Fprintln(&b, "\tRows ecs.Query[struct {")
		fmt.Fprintf(&b, "\t\tA *GenComp%02d\n", ca)
		fmt.Fprintf(&b, "\t\tB *GenComp%02d\n", cb)
		fmt.Fprintln(&b, "\t}]")
		fmt.Fprintln(&b, "}")
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "func (s *GenSystem%02d) Execute(frame *ecs.Frame) error {\n", i)
		fmt.Fprintln(&b, "\tfor _, row := range s.Rows.IterMut() {")
		fmt.Fprintln(&b, "\t\trow.A.A += row.B.B * float32(frame.DeltaTime)")
		fmt.Fprintln(&b, "\t\trow.B.A += row.A.B * float32(frame.DeltaTime)")
		fmt.Fprintln(&b, "\t}")
		fmt.Fprintln(&b, "\treturn nil")
		fmt.Fprintln(&b, "}")
	}

	fmt.Fprintln(&b)
	fmt.Fprintln(&b, "func RegisterAllGeneratedSystems(sched *ecs.Scheduler) {")
	for i := 0; i < systems; i++ {
		fmt.Fprintf(&b, "\tsched.Add(&GenSystem%02d{})\n", i)
	}
	fmt.Fprintln(&b, "}")

	return b.Bytes()
}
