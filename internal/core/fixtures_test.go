package core_test

import (
	"errors"

	"github.com/toejough/delegation/internal/core"
)

// AgeModel stands in for a model object through a table of funcs.
type AgeModel struct {
	Age func() int
}

// Person delegates Age to its model.
type Person struct {
	Model *AgeModel
}

func (p *Person) Age() int {
	return p.Model.Age()
}

// Mailman is a delegation target reached through an interface.
type Mailman interface {
	DeliverMail(address string)
	DeliverWithHaste(address string)
}

// PostOffice forwards DeliverMail to its mailman as DeliverWithHaste.
type PostOffice struct {
	mailman Mailman
}

func (p *PostOffice) DeliverMail(address string) {
	p.mailman.DeliverWithHaste(address)
}

// SlowPostOffice forwards without the alias.
type SlowPostOffice struct {
	mailman Mailman
}

func (p *SlowPostOffice) DeliverMail(address string) {
	p.mailman.DeliverMail(address)
}

// SloppyPostOffice forwards a different address.
type SloppyPostOffice struct {
	mailman Mailman
}

func (p *SloppyPostOffice) DeliverMail(address string) {
	p.mailman.DeliverWithHaste(address + " (approximately)")
}

// LazyPostOffice never forwards.
type LazyPostOffice struct {
	mailman Mailman
}

func (p *LazyPostOffice) DeliverMail(string) {}

// Dispatcher reaches its mailman through a getter func.
type Dispatcher struct {
	mailman func() (Mailman, error)
}

func (d *Dispatcher) DeliverMail(address string) error {
	mailman, err := d.mailman()
	if err != nil {
		return err
	}

	mailman.DeliverWithHaste(address)

	return nil
}

// VoiceTable has a variadic func.
type VoiceTable struct {
	Say func(words ...string)
}

// Greeter forwards Greet as Say with fixed words.
type Greeter struct {
	Voice VoiceTable
}

func (g *Greeter) Greet() {
	g.Voice.Say("hello")
}

// Echo forwards its variadic arguments.
type Echo struct {
	Voice *VoiceTable
}

func (e *Echo) Say(words ...string) {
	e.Voice.Say(words...)
}

// Ledger takes a pointer argument.
type Ledger struct {
	Books *BookTable
}

type Entry struct {
	Amount int
}

type BookTable struct {
	Post func(entry *Entry) error
}

func (l *Ledger) Post(entry *Entry) error {
	return l.Books.Post(entry)
}

// Factory is a subject that describes itself as type-level.
type Factory struct {
	Builder *BuildTable
}

type BuildTable struct {
	Build func(name string) any
}

func (f *Factory) Build(name string) any {
	return f.Builder.Build(name)
}

func (Factory) TypeLevel() bool {
	return true
}

// Pinger talks to a loosely typed target.
type Pinger struct {
	Target any
}

func (p *Pinger) Ping() {
	p.Target.(core.Recorder).Record("Ping")
}

// Exploder panics after delegating.
type Exploder struct {
	Model *AgeModel
}

func (e *Exploder) Age() int {
	e.Model.Age()
	panic(errBoom)
}

// Unfaked has no registered fake.
type Unfaked interface {
	Do()
}

type Worker struct {
	job Unfaked
}

func (w *Worker) Do() {
	w.job.Do()
}

// Counter holds a field no spy can stand in for.
type Counter struct {
	count int
}

func (c *Counter) Increment() {
	c.count++
}

// Holder holds a struct with no funcs.
type Holder struct {
	Entry Entry
}

func (h *Holder) Amount() int {
	return h.Entry.Amount
}

// Husher's fake is registered as nil.
type Husher interface {
	Hush()
}

type Library struct {
	silent Husher
}

func (l *Library) Hush() {
	l.silent.Hush()
}

// Archive reaches its model through an embedded pointer.
type Archive struct {
	*Shelf
}

type Shelf struct {
	Model *AgeModel
}

func (a *Archive) Age() int {
	return a.Model.Age()
}

type fakeMailman struct {
	rec core.Recorder
}

func (f fakeMailman) DeliverMail(address string) {
	f.rec.Record("DeliverMail", address)
}

func (f fakeMailman) DeliverWithHaste(address string) {
	f.rec.Record("DeliverWithHaste", address)
}

var errBoom = errors.New("boom")

//nolint:gochecknoinits // fakes are registered once for every test in the package
func init() {
	core.RegisterFake(func(rec core.Recorder) Mailman { return fakeMailman{rec: rec} })
}
