package products

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"ProductAPI/pkg/kit"
)

const (
	homeMessage = "Backend API assessment!"

	msgMissingFields = "Missing required fields: 'name', 'price', 'quantity'"
	msgBodyNotJSON   = "Request body must be JSON"
	msgNotReady      = "not ready"

	fieldName     = "name"
	fieldPrice    = "price"
	fieldQuantity = "quantity"

	readyTimeout = 1 * time.Second
)

var (
	errMissingFields = kit.NewError(http.StatusBadRequest, msgMissingFields)
	errBodyNotJSON   = kit.NewError(http.StatusBadRequest, msgBodyNotJSON)
)

func notFound(id string) error {
	return kit.NewError(http.StatusNotFound, "Product not found: "+id)
}

type Server struct {
	Store        Store
	Log          *zap.Logger
	MaxBodyBytes int64
}

type messageResp struct {
	Message string `json:"message"`
}

type deleteResp struct {
	Message string  `json:"message"`
	Deleted Product `json:"deleted product"`
}

func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.NotFound(kit.NotFound)
	r.MethodNotAllowed(kit.MethodNotAllowed)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/readyz", s.readyz)

	r.Get("/", s.handle(s.home))

	r.Post("/products", s.handle(s.create))
	r.Get("/products", s.handle(s.list))
	r.Get("/products/{id:[0-9]+}", s.handle(s.get))
	r.Put("/products/{id:[0-9]+}", s.handle(s.update))
	r.Delete("/products/{id:[0-9]+}", s.handle(s.delete))

	return r
}

func (s *Server) handle(fn kit.HandlerFunc) http.HandlerFunc {
	return kit.Handle(s.logger(), fn)
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}

func (s *Server) readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := s.Store.Ping(ctx); err != nil {
		s.logger().Warn("readyz failed", zap.Error(err))
		kit.WriteError(w, http.StatusServiceUnavailable, msgNotReady)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) home(w http.ResponseWriter, _ *http.Request) error {
	kit.WriteJSON(w, http.StatusOK, messageResp{Message: homeMessage})
	return nil
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) error {
	obj, err := decodeObject(w, r, s.MaxBodyBytes)
	if err != nil {
		return err
	}

	f, ok := requiredFields(obj)
	if !ok {
		return errMissingFields
	}

	p, err := s.Store.Create(r.Context(), f)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}

	s.logMutation("product created", p.ID, obj)
	kit.WriteJSON(w, http.StatusCreated, p)
	return nil
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) error {
	out, err := s.Store.List(r.Context())
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	if out == nil {
		out = []Product{}
	}
	kit.WriteJSON(w, http.StatusOK, out)
	return nil
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	p, ok, err := s.Store.Get(r.Context(), id)
	if err != nil {
		return fmt.Errorf("get product %d: %w", id, err)
	}
	if !ok {
		return notFound(strconv.FormatInt(id, 10))
	}
	kit.WriteJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) error {
	obj, err := decodeObject(w, r, s.MaxBodyBytes)
	if err != nil {
		return err
	}
	if obj == nil {
		return errBodyNotJSON
	}

	id, err := pathID(r)
	if err != nil {
		return err
	}

	p, ok, err := s.Store.Update(r.Context(), id, patchFrom(obj))
	if err != nil {
		return fmt.Errorf("update product %d: %w", id, err)
	}
	if !ok {
		return notFound(strconv.FormatInt(id, 10))
	}

	s.logMutation("product updated", id, obj)
	kit.WriteJSON(w, http.StatusOK, p)
	return nil
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r)
	if err != nil {
		return err
	}

	p, ok, err := s.Store.Delete(r.Context(), id)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", id, err)
	}
	if !ok {
		return notFound(strconv.FormatInt(id, 10))
	}

	s.logMutation("product deleted", id, nil)
	kit.WriteJSON(w, http.StatusOK, deleteResp{
		Message: fmt.Sprintf("Product with ID %d is deleted successfully", id),
		Deleted: p,
	})
	return nil
}

// pathID parses the {id} segment. The route already restricts it to digits,
// so the only failure is overflow, and such an id can never have been issued.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, notFound(raw)
	}
	return id, nil
}

func requiredFields(obj map[string]Value) (Fields, bool) {
	name, okName := obj[fieldName]
	price, okPrice := obj[fieldPrice]
	qty, okQty := obj[fieldQuantity]
	if !okName || !okPrice || !okQty {
		return Fields{}, false
	}
	return Fields{Name: name, Price: price, Quantity: qty}, true
}

func patchFrom(obj map[string]Value) Patch {
	var p Patch
	if v, ok := obj[fieldName]; ok {
		p.Name = &v
	}
	if v, ok := obj[fieldPrice]; ok {
		p.Price = &v
	}
	if v, ok := obj[fieldQuantity]; ok {
		p.Quantity = &v
	}
	return p
}

func (s *Server) logMutation(msg string, id int64, obj map[string]Value) {
	log := s.logger()
	if !log.Core().Enabled(zap.DebugLevel) {
		return
	}

	fields := []zap.Field{zap.Int64("product_id", id)}
	for _, k := range []string{fieldName, fieldPrice, fieldQuantity} {
		if v, ok := obj[k]; ok {
			fields = append(fields, zap.Stringer(k+"_kind", v.Kind()))
		}
	}
	log.Debug(msg, fields...)
}
