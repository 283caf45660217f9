package http

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/container"
	"github.com/km-arc/go-beans/framework/metrics"
	"github.com/km-arc/go-beans/framework/routing"
	"github.com/km-arc/go-beans/framework/validation"
)

// BeanView is the JSON form of one bean.
type BeanView struct {
	ID            string            `json:"id" yaml:"id"`
	Type          string            `json:"type" yaml:"type"`
	RuntimeType   string            `json:"runtime_type" yaml:"runtime_type"`
	PostProcessor bool              `json:"post_processor,omitempty" yaml:"post_processor,omitempty"`
	Properties    map[string]string `json:"properties,omitempty" yaml:"properties,omitempty"`
	Refs          map[string]string `json:"refs,omitempty" yaml:"refs,omitempty"`
}

// Health is the JSON form of GET /health.
type Health struct {
	Context string `json:"context"`
	State   string `json:"state"`
	Beans   int    `json:"beans"`
}

var listRules = validation.Rules{"type": "sometimes|max:512"}

const masked = "******"

// secretWords mark property names whose values never leave the process.
var secretWords = []string{"password", "secret", "token", "key"}

// Admin serves read-only views of a Context.
type Admin struct {
	ctx     *container.Context
	log     *zap.Logger
	metrics http.Handler
}

// NewAdmin builds the handlers for ctx. A nil logger is replaced by a no-op.
func NewAdmin(ctx *container.Context, log *zap.Logger) (*Admin, error) {
	if log == nil {
		log = zap.NewNop()
	}
	reg, err := metrics.Registry(ctx, "beans")
	if err != nil {
		return nil, err
	}
	return &Admin{
		ctx:     ctx,
		log:     log,
		metrics: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}, nil
}

// Routes mounts the admin endpoints on r.
func (a *Admin) Routes(r *routing.Router) {
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { NewResponse(w).NotFound() })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { NewResponse(w).MethodNotAllowed() })

	r.Get("/health", a.Health)
	r.Head("/health", a.Health)
	r.Get("/beans", a.List)
	r.Get("/beans/{id}", a.Show)
	r.Get("/metrics", a.metrics.ServeHTTP)
}

// Handler returns a Router with every endpoint mounted.
func (a *Admin) Handler() http.Handler {
	r := routing.New(a.log)
	a.Routes(r)
	return r
}

// Health reports the lifecycle state. Anything but Ready is a 503.
func (a *Admin) Health(w http.ResponseWriter, _ *http.Request) {
	res := NewResponse(w)
	state := a.ctx.State()
	h := Health{
		Context: a.ctx.ID(),
		State:   state.String(),
		Beans:   len(a.ctx.Beans()),
	}
	if state != container.Ready {
		res.Unavailable(h)
		return
	}
	res.Success(h)
}

// List returns every bean in definition order, filtered by ?type= when set.
func (a *Admin) List(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)

	v := validation.Make(req.Queries(), listRules)
	if v.Fails() {
		res.ValidationError(v.Errors())
		return
	}
	if !a.ready(res) {
		return
	}

	filter := req.Query("type")
	defs := a.definitions()
	views := make([]BeanView, 0, len(defs))
	for _, b := range a.ctx.Beans() {
		view := ViewOf(b, defs[b.ID])
		if filter != "" && view.RuntimeType != filter {
			continue
		}
		views = append(views, view)
	}
	res.Success(views)
}

// Show returns one bean by id.
func (a *Admin) Show(w http.ResponseWriter, r *http.Request) {
	req, res := NewRequest(r), NewResponse(w)
	if !a.ready(res) {
		return
	}

	id := req.RouteParam("id")
	instance, err := a.ctx.Bean(id)
	switch {
	case errors.Is(err, container.ErrNotFound):
		res.NotFound("No bean with id " + id + ".")
		return
	case err != nil:
		a.log.Error("bean lookup failed", zap.String("id", id), zap.Error(err))
		res.ServerError()
		return
	}
	res.Success(ViewOf(beans.Bean{ID: id, Instance: instance}, a.definitions()[id]))
}

func (a *Admin) ready(res *Response) bool {
	if a.ctx.State() == container.Ready {
		return true
	}
	res.Unavailable(Health{Context: a.ctx.ID(), State: a.ctx.State().String()})
	return false
}

func (a *Admin) definitions() map[string]beans.Definition {
	defs := a.ctx.Definitions()
	out := make(map[string]beans.Definition, len(defs))
	for _, d := range defs {
		out[d.ID] = d
	}
	return out
}

// ViewOf pairs a bean with its post-processed definition. Values of
// secret-looking properties are masked.
func ViewOf(b beans.Bean, def beans.Definition) BeanView {
	return BeanView{
		ID:            b.ID,
		Type:          def.Type,
		RuntimeType:   reflect.TypeOf(b.Instance).String(),
		PostProcessor: def.PostProcessor,
		Properties:    maskSecrets(def.Properties),
		Refs:          def.Refs,
	}
}

func maskSecrets(props map[string]string) map[string]string {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]string, len(props))
	for name, value := range props {
		if isSecret(name) {
			value = masked
		}
		out[name] = value
	}
	return out
}

func isSecret(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range secretWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
