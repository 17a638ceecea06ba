package ecs

import (
	"context"
	"reflect"
	"runtime"
	"runtime/debug"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type scheduleState int

const (
	stateBuilding scheduleState = iota
	stateCompiled
	stateRunning
)

// ErrorSink decides the fate of a system failure. Returning the error (or a
// wrapped one) aborts the pass; returning nil downgrades the failure to
// recoverable and the pass continues. Sibling systems in the same wave that
// already completed are unaffected either way.
type ErrorSink func(err error) error

// Scheduler orders and parallelizes systems over one world. It moves through
// three states: building (systems are added), compiled (the conflict graph
// and wave partitioning are computed), and running (waves are dispatched).
// Adding a system drops it back to building; compilation is paid once per
// rebuild, not per pass.
type Scheduler struct {
	world   *World
	state   scheduleState
	nodes   []*systemNode
	waves   [][]int
	workers int
	logger  *zap.Logger
	sink    ErrorSink

	passCount  uint64
	totalPass  time.Duration
	lastPassAt time.Time
}

type systemNode struct {
	name   string
	system System
	index  int

	before    []string
	after     []string
	exclusive bool

	readTypes     []reflect.Type
	writeTypes    []reflect.Type
	readResTypes  []reflect.Type
	writeResTypes []reflect.Type

	access        Access
	queries       []systemQuery
	resources     []systemResource
	commands      *Commands
	applyDeferred bool

	stats systemStatsInternal
}

// SchedulerOption configures a scheduler at construction.
type SchedulerOption func(*Scheduler)

// WithWorkers sets the size of the worker pool a wave is dispatched onto.
// The default is the number of available CPUs.
func WithWorkers(n int) SchedulerOption {
	return func(s *Scheduler) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger attaches a structured logger; system failures and recovered
// panics are reported through it. The default logger discards everything.
func WithLogger(l *zap.Logger) SchedulerOption {
	return func(s *Scheduler) { s.logger = l }
}

// WithErrorSink replaces the default fatal error policy.
func WithErrorSink(sink ErrorSink) SchedulerOption {
	return func(s *Scheduler) { s.sink = sink }
}

// NewScheduler creates a scheduler for the given world.
func NewScheduler(w *World, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		world:   w,
		workers: runtime.NumCPU(),
		logger:  zap.NewNop(),
		sink:    func(err error) error { return err },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add registers a system. Query and Res fields on the system struct are
// initialized here; if the system implements Initializer, Init runs after
// the fields are bound so it can attach query filters. Options declare
// ordering constraints and the access footprint.
func (s *Scheduler) Add(system System, opts ...SystemOption) {
	node := &systemNode{
		system:   system,
		index:    len(s.nodes),
		commands: NewCommands(s.world),
	}
	node.stats.minDuration = time.Duration(1<<63 - 1)
	for _, opt := range opts {
		opt(node)
	}
	if node.name == "" {
		node.name = systemName(system)
	}

	s.bindFields(node)
	if init, ok := system.(Initializer); ok {
		// Queries and resource accessors created inside Init (via NewQuery or
		// Res.Init) are captured into the node's footprint, so they take part
		// in conflict analysis and get their last-run ticks maintained.
		s.world.captureQuery = func(q systemQuery) { node.queries = append(node.queries, q) }
		s.world.captureResource = func(r systemResource) { node.resources = append(node.resources, r) }
		init.Init(s.world)
		s.world.captureQuery = nil
		s.world.captureResource = nil
	}

	s.nodes = append(s.nodes, node)
	s.state = stateBuilding
}

// AddApplyDeferred registers an exclusive barrier system that flushes every
// command buffer accumulated by the waves before it. Use it to make deferred
// structural changes visible to later systems within the same pass.
func (s *Scheduler) AddApplyDeferred(opts ...SystemOption) {
	opts = append([]SystemOption{Named("ApplyDeferred")}, opts...)
	opts = append(opts, Exclusive())
	s.Add(&applyDeferredSystem{scheduler: s}, opts...)
	s.nodes[len(s.nodes)-1].applyDeferred = true
}

type applyDeferredSystem struct {
	scheduler *Scheduler
}

func (a *applyDeferredSystem) Execute(*Frame) error {
	a.scheduler.flushCommands()
	return nil
}

var (
	systemQueryType    = reflect.TypeOf((*systemQuery)(nil)).Elem()
	systemResourceType = reflect.TypeOf((*systemResource)(nil)).Elem()
)

// bindFields walks the system struct and initializes Query and Res fields,
// collecting them for access derivation and last-run bookkeeping. Exported
// pointer Query/Res fields are rejected: a nil pointer cannot be bound, and a
// silently skipped field would leave its access outside the conflict
// analysis.
func (s *Scheduler) bindFields(node *systemNode) {
	v := reflect.ValueOf(node.system)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return
	}
	structType := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		sf := structType.Field(i)
		if sf.IsExported() && sf.Type.Kind() == reflect.Ptr &&
			(sf.Type.Implements(systemQueryType) || sf.Type.Implements(systemResourceType)) {
			panic("ecs: system " + node.name + " field " + sf.Name +
				" is a pointer; declare Query and Res fields by value so the scheduler can bind them")
		}
		if !field.CanAddr() || field.Kind() != reflect.Struct {
			continue
		}
		addr := field.Addr()
		if !addr.CanInterface() {
			continue
		}
		switch f := addr.Interface().(type) {
		case systemQuery:
			f.Init(s.world)
			node.queries = append(node.queries, f)
		case systemResource:
			f.Init(s.world)
			node.resources = append(node.resources, f)
		}
	}
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Compile resolves access footprints, checks ordering constraints, and
// partitions systems into waves. It fails with a ScheduleCycleError if the
// constraints form a cycle and an AccessConflictError if a constraint names
// an unknown system or a system's queries exceed its declared access.
func (s *Scheduler) Compile() error {
	byName := make(map[string]int, len(s.nodes))
	for i, node := range s.nodes {
		if prev, dup := byName[node.name]; dup {
			return &AccessConflictError{
				System: node.name,
				Detail: "name already used by system #" + strconv.Itoa(prev),
			}
		}
		byName[node.name] = i
	}

	for _, node := range s.nodes {
		if err := s.resolveAccess(node); err != nil {
			return err
		}
	}

	// Ordering edges: succ[a] contains b when a must run before b.
	n := len(s.nodes)
	succ := make([][]int, n)
	indegree := make([]int, n)
	addEdge := func(from, to int) {
		succ[from] = append(succ[from], to)
		indegree[to]++
	}
	for i, node := range s.nodes {
		for _, name := range node.before {
			j, ok := byName[name]
			if !ok {
				return &AccessConflictError{System: node.name, Detail: "Before references unknown system " + name}
			}
			addEdge(i, j)
		}
		for _, name := range node.after {
			j, ok := byName[name]
			if !ok {
				return &AccessConflictError{System: node.name, Detail: "After references unknown system " + name}
			}
			addEdge(j, i)
		}
	}

	// Kahn's algorithm, taking ready nodes in registration order so wave
	// layout is deterministic for a given Add sequence.
	topo := make([]int, 0, n)
	done := make([]bool, n)
	for len(topo) < n {
		progressed := false
		for i := 0; i < n; i++ {
			if done[i] || indegree[i] > 0 {
				continue
			}
			done[i] = true
			topo = append(topo, i)
			for _, j := range succ[i] {
				indegree[j]--
			}
			progressed = true
		}
		if !progressed {
			var cycle []string
			for i := 0; i < n; i++ {
				if !done[i] {
					cycle = append(cycle, s.nodes[i].name)
				}
			}
			return &ScheduleCycleError{Systems: cycle}
		}
	}

	// Wave partitioning: each system lands in the earliest wave after all of
	// its predecessors that holds no conflicting member. Exclusive systems
	// occupy single-element waves.
	waveOf := make([]int, n)
	preds := make([][]int, n)
	for from, tos := range succ {
		for _, to := range tos {
			preds[to] = append(preds[to], from)
		}
	}

	var waves [][]int
	for _, i := range topo {
		node := s.nodes[i]
		earliest := 0
		for _, p := range preds[i] {
			if waveOf[p]+1 > earliest {
				earliest = waveOf[p] + 1
			}
		}
		w := earliest
		for {
			if w == len(waves) {
				waves = append(waves, nil)
			}
			if s.canJoinWave(waves[w], node) {
				break
			}
			w++
		}
		waves[w] = append(waves[w], i)
		waveOf[i] = w
	}

	s.waves = waves
	s.state = stateCompiled
	return nil
}

func (s *Scheduler) canJoinWave(members []int, node *systemNode) bool {
	if node.exclusive {
		return len(members) == 0
	}
	for _, m := range members {
		if s.nodes[m].access.conflictsWith(&node.access) {
			return false
		}
	}
	return true
}

// resolveAccess builds the node's access bitset from its declared types, or
// conservatively from its query fields when nothing was declared.
func (s *Scheduler) resolveAccess(node *systemNode) error {
	node.access = Access{exclusive: node.exclusive}
	if node.exclusive {
		return nil
	}

	declared := len(node.readTypes)+len(node.writeTypes)+len(node.readResTypes)+len(node.writeResTypes) > 0
	for _, t := range node.readTypes {
		node.access.reads.set(componentBit(s.world.registry.componentID(t)))
	}
	for _, t := range node.writeTypes {
		node.access.writes.set(componentBit(s.world.registry.componentID(t)))
	}
	for _, t := range node.readResTypes {
		node.access.reads.set(resourceBit(s.world.registry.resourceID(t)))
	}
	for _, t := range node.writeResTypes {
		node.access.writes.set(resourceBit(s.world.registry.resourceID(t)))
	}

	var queried bitset
	for _, q := range node.queries {
		required, optional := q.accessMasks()
		required.forEachSet(func(id ComponentID) { queried.set(componentBit(id)) })
		optional.forEachSet(func(id ComponentID) { queried.set(componentBit(id)) })
	}

	if !declared {
		// No declaration: assume every queried component is written and
		// every bound resource is written. Over-approximation is safe; it
		// only costs parallelism.
		node.access.writes.or(queried)
		for _, r := range node.resources {
			node.access.writes.set(resourceBit(s.world.registry.resourceID(r.resourceType())))
		}
		return nil
	}

	var granted bitset
	granted.or(node.access.reads)
	granted.or(node.access.writes)
	if !granted.containsAll(queried) {
		return &AccessConflictError{
			System: node.name,
			Detail: "query touches components outside the declared Reads/Writes sets",
		}
	}
	for _, r := range node.resources {
		bit := resourceBit(s.world.registry.resourceID(r.resourceType()))
		if !granted.has(bit) {
			return &AccessConflictError{
				System: node.name,
				Detail: "Res field touches a resource outside the declared access sets",
			}
		}
	}
	return nil
}

// Once executes a single pass: the waves run in order, each at its own tick,
// and all remaining command buffers are flushed at the end. The clock advances
// after every wave, so a write made by a later wave carries a strictly newer
// stamp than any earlier system's last-run point and is reported to that
// system's Added/Changed filters on its next run. The same holds for the
// final flush and for direct world mutation between passes. dt is the
// wall-clock seconds since the previous pass, handed to systems as
// Frame.DeltaTime.
func (s *Scheduler) Once(dt float64) error {
	if s.state == stateBuilding {
		if err := s.Compile(); err != nil {
			return err
		}
	}
	s.state = stateRunning
	defer func() { s.state = stateCompiled }()

	s.passCount++
	if s.passCount%tickCheckInterval == 0 {
		s.world.CheckTicks()
	}

	passStart := time.Now()
	for _, wave := range s.waves {
		tick := s.world.Tick()
		if err := s.runWave(wave, dt, tick); err != nil {
			return err
		}
		s.world.AdvanceTick()
	}
	if len(s.waves) == 0 {
		s.world.AdvanceTick()
	}
	s.flushCommands()
	s.totalPass += time.Since(passStart)
	return nil
}

const tickCheckInterval = 1 << 16

func (s *Scheduler) runWave(wave []int, dt float64, tick Tick) error {
	if len(wave) == 1 && s.nodes[wave[0]].exclusive {
		return s.runSystem(s.nodes[wave[0]], dt, tick)
	}

	g := new(errgroup.Group)
	g.SetLimit(s.workers)
	for _, idx := range wave {
		node := s.nodes[idx]
		g.Go(func() error {
			return s.runSystem(node, dt, tick)
		})
	}
	return g.Wait()
}

// runSystem executes one system with panic isolation, routes any failure
// through the error sink, and records stats and query last-run ticks.
func (s *Scheduler) runSystem(node *systemNode, dt float64, tick Tick) error {
	frame := &Frame{
		DeltaTime: dt,
		Commands:  node.commands,
		Access:    &WorldAccess{world: s.world, access: &node.access},
	}

	start := time.Now()
	err := s.callProtected(node, frame)
	node.stats.record(time.Since(start))

	for _, q := range node.queries {
		q.markRun(tick)
	}

	if err == nil {
		return nil
	}
	s.logger.Error("system failed",
		zap.String("system", node.name),
		zap.Error(err),
	)
	return s.sink(err)
}

func (s *Scheduler) callProtected(node *systemNode, frame *Frame) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SystemPanicError{
				System: node.name,
				Value:  r,
				Stack:  debug.Stack(),
			}
		}
	}()
	return node.system.Execute(frame)
}

// flushCommands applies every non-empty command buffer in system registration
// order, which keeps structural mutation deterministic regardless of how the
// wave execution interleaved.
func (s *Scheduler) flushCommands() {
	for _, node := range s.nodes {
		if !node.commands.isEmpty() {
			node.commands.Flush()
		}
	}
}

// Run executes passes at the given interval until the context is cancelled or
// a pass returns a fatal error.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			if err := s.Once(dt); err != nil {
				return err
			}
		}
	}
}

// Waves returns the compiled wave layout as system names, mainly for tests
// and the stress report. Returns nil while the schedule is still building.
func (s *Scheduler) Waves() [][]string {
	if s.state == stateBuilding {
		return nil
	}
	out := make([][]string, len(s.waves))
	for i, wave := range s.waves {
		for _, idx := range wave {
			out[i] = append(out[i], s.nodes[idx].name)
		}
	}
	return out
}
