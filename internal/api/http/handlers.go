package httpapi

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"cantinho-algarvio/internal/cart"
	"cantinho-algarvio/internal/catalog"
	"cantinho-algarvio/internal/domain"
	"cantinho-algarvio/internal/service"
)

type NotificationStore interface {
	ListNotifications(ctx context.Context, limit int) ([]domain.Notification, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context) error
}

type FavoritesStore interface {
	AddFavorite(ctx context.Context, session, dishID string) error
	RemoveFavorite(ctx context.Context, session, dishID string) error
	ListFavorites(ctx context.Context, session string) ([]string, error)
}

type Handler struct {
	Cart          *cart.Store
	DishSource    catalog.DishSource
	Dishes        service.DishServiceInterface
	Orders        service.OrderServiceInterface
	Reviews       service.ReviewServiceInterface
	Reference     service.ReferenceServiceInterface
	Reports       *service.ReportsService
	Notifications NotificationStore
	Favorites     FavoritesStore

	mu    sync.Mutex
	feeds map[string]*catalog.Feed
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/dishes", h.browseDishes).Methods("GET")
	r.HandleFunc("/api/dishes", h.createDish).Methods("POST")
	r.HandleFunc("/api/dishes/{id}", h.getDish).Methods("GET")
	r.HandleFunc("/api/dishes/{id}", h.updateDish).Methods("PUT")
	r.HandleFunc("/api/dishes/{id}", h.deleteDish).Methods("DELETE")
	r.HandleFunc("/api/categories", h.listCategories).Methods("GET")

	r.HandleFunc("/api/cart", h.getCart).Methods("GET")
	r.HandleFunc("/api/cart", h.clearCart).Methods("DELETE")
	r.HandleFunc("/api/cart/items", h.addCartItem).Methods("POST")
	r.HandleFunc("/api/cart/items/{id}", h.updateCartItem).Methods("PUT")
	r.HandleFunc("/api/cart/items/{id}", h.removeCartItem).Methods("DELETE")

	r.HandleFunc("/api/orders", h.submitOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.sessionOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")

	r.HandleFunc("/api/dishes/{id}/reviews", h.createReview).Methods("POST")
	r.HandleFunc("/api/dishes/{id}/reviews", h.getDishReviews).Methods("GET")

	r.HandleFunc("/api/favorites", h.listFavorites).Methods("GET")
	r.HandleFunc("/api/favorites/{dishId}", h.addFavorite).Methods("POST")
	r.HandleFunc("/api/favorites/{dishId}", h.removeFavorite).Methods("DELETE")

	r.HandleFunc("/api/delivery-zones", h.listDeliveryZones).Methods("GET")
	r.HandleFunc("/api/payment-methods", h.listPaymentMethods).Methods("GET")
	r.HandleFunc("/api/settings", h.getSettings).Methods("GET")

	r.HandleFunc("/api/admin/orders", h.adminListOrders).Methods("GET")
	r.HandleFunc("/api/admin/orders/{id}/status", h.adminUpdateStatus).Methods("PUT")
	r.HandleFunc("/api/admin/orders/{id}/payment", h.adminUpdatePayment).Methods("PUT")
	r.HandleFunc("/api/admin/reports/summary", h.reportSummary).Methods("GET")
	r.HandleFunc("/api/admin/reports/top-dishes", h.reportTopDishes).Methods("GET")
	r.HandleFunc("/api/admin/notifications", h.listNotifications).Methods("GET")
	r.HandleFunc("/api/admin/notifications/read-all", h.markAllNotificationsRead).Methods("PUT")
	r.HandleFunc("/api/admin/notifications/{id}/read", h.markNotificationRead).Methods("PUT")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "cantinho-algarvio",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

// session identifies the visitor. The storefront sends a random id it keeps
// in device storage.
func session(r *http.Request) string {
	return r.Header.Get("X-Session-ID")
}

func requireSession(w http.ResponseWriter, r *http.Request) (string, bool) {
	s := session(r)
	if s == "" {
		http.Error(w, "Missing X-Session-ID header", http.StatusBadRequest)
		return "", false
	}
	return s, true
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(body)
}

// Catalog.

// sessionFeed returns the visitor's accumulating catalog view, creating it
// on first use. Feeds are session scoped and vanish on restart.
func (h *Handler) sessionFeed(session string) *catalog.Feed {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.feeds == nil {
		h.feeds = make(map[string]*catalog.Feed)
	}
	feed, ok := h.feeds[session]
	if !ok {
		feed = catalog.NewFeed(h.DishSource)
		h.feeds[session] = feed
	}
	return feed
}

func (h *Handler) browseDishes(w http.ResponseWriter, r *http.Request) {
	// Feeds are keyed by session; without the header every visitor would
	// share one accumulating view.
	s, ok := requireSession(w, r)
	if !ok {
		return
	}

	params := r.URL.Query()
	q := catalog.Query{
		Search:   params.Get("search"),
		Category: params.Get("category"),
		Featured: params.Get("featured") == "true",
		Popular:  params.Get("popular") == "true",
		PageSize: atoiDefault(params.Get("page_size"), 0),
	}

	feed := h.sessionFeed(s)
	if err := feed.SetFilters(r.Context(), q); err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	if params.Get("more") == "true" {
		if err := feed.LoadMore(r.Context()); err != nil {
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items":    feed.Items(),
		"total":    feed.Total(),
		"has_more": feed.HasMore(),
	})
}

func (h *Handler) getDish(w http.ResponseWriter, r *http.Request) {
	dish, err := h.Dishes.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Dish not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) createDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if dish.Name == "" || dish.Price < 0 {
		http.Error(w, "Invalid dish payload", http.StatusBadRequest)
		return
	}
	if err := h.Dishes.Create(r.Context(), &dish); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, dish)
}

func (h *Handler) updateDish(w http.ResponseWriter, r *http.Request) {
	var dish domain.Dish
	if err := json.NewDecoder(r.Body).Decode(&dish); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	dish.ID = mux.Vars(r)["id"]
	if err := h.Dishes.Update(r.Context(), &dish); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Dish not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dish)
}

func (h *Handler) deleteDish(w http.ResponseWriter, r *http.Request) {
	rows, err := h.Dishes.Delete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Dish not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Dishes.Categories(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if categories == nil {
		categories = []string{}
	}
	writeJSON(w, http.StatusOK, categories)
}

// Cart.

func (h *Handler) cartView(ctx context.Context, session string) map[string]interface{} {
	items := h.Cart.Items(ctx, session)
	if items == nil {
		items = []domain.CartItem{}
	}
	return map[string]interface{}{
		"items":       items,
		"total_items": h.Cart.TotalItems(ctx, session),
		"subtotal":    h.Cart.Subtotal(ctx, session),
	}
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.cartView(r.Context(), s))
}

func (h *Handler) addCartItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}

	var payload struct {
		domain.CartItem
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if payload.ID == "" || payload.Name == "" || payload.Price < 0 {
		http.Error(w, "Invalid cart item", http.StatusBadRequest)
		return
	}

	h.Cart.AddItem(r.Context(), s, payload.CartItem, payload.Quantity)
	writeJSON(w, http.StatusOK, h.cartView(r.Context(), s))
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}

	var payload struct {
		Quantity int `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.Cart.UpdateQuantity(r.Context(), s, mux.Vars(r)["id"], payload.Quantity)
	writeJSON(w, http.StatusOK, h.cartView(r.Context(), s))
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	h.Cart.RemoveItem(r.Context(), s, mux.Vars(r)["id"])
	writeJSON(w, http.StatusOK, h.cartView(r.Context(), s))
}

func (h *Handler) clearCart(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	h.Cart.Clear(r.Context(), s)
	w.WriteHeader(http.StatusNoContent)
}

// Checkout and tracking.

func (h *Handler) submitOrder(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}

	var payload struct {
		CustomerInfo    domain.CustomerInfo `json:"customer_info"`
		LocationID      string              `json:"location_id"`
		PaymentMethodID string              `json:"payment_method_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	zone, err := h.Reference.DeliveryZone(r.Context(), payload.LocationID)
	if err != nil {
		http.Error(w, "Unknown delivery location", http.StatusBadRequest)
		return
	}
	method, err := h.Reference.PaymentMethod(r.Context(), payload.PaymentMethodID)
	if err != nil {
		http.Error(w, "Unknown payment method", http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Submit(r.Context(), s, service.SubmitOrderInput{
		Items:         h.Cart.Items(r.Context(), s),
		CustomerInfo:  payload.CustomerInfo,
		Location:      *zone,
		PaymentMethod: method.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart), errors.Is(err, service.ErrMissingCustomer):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	h.Cart.Clear(r.Context(), s)
	writeJSON(w, http.StatusCreated, order)
}

func (h *Handler) sessionOrders(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	orders, err := h.Orders.SessionHistory(r.Context(), s)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	qr, err := h.Orders.QRCode(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qr)
}

// Reviews.

func (h *Handler) createReview(w http.ResponseWriter, r *http.Request) {
	var review domain.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	review.DishID = mux.Vars(r)["id"]

	if err := h.Reviews.CreateOrUpdate(r.Context(), &review); err != nil {
		switch {
		case errors.Is(err, service.ErrDishNotInOrder), errors.Is(err, service.ErrInvalidRating):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, service.ErrDuplicateReview):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, review)
}

func (h *Handler) getDishReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Reviews.ListDishReviews(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if reviews == nil {
		reviews = []domain.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

// Favorites.

func (h *Handler) listFavorites(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}

	ids, err := h.Favorites.ListFavorites(r.Context(), s)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dishes := []domain.Dish{}
	for _, id := range ids {
		dish, err := h.Dishes.Get(r.Context(), id)
		if err != nil {
			continue
		}
		dishes = append(dishes, *dish)
	}
	writeJSON(w, http.StatusOK, dishes)
}

func (h *Handler) addFavorite(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := h.Favorites.AddFavorite(r.Context(), s, mux.Vars(r)["dishId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeFavorite(w http.ResponseWriter, r *http.Request) {
	s, ok := requireSession(w, r)
	if !ok {
		return
	}
	if err := h.Favorites.RemoveFavorite(r.Context(), s, mux.Vars(r)["dishId"]); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Reference data.

func (h *Handler) listDeliveryZones(w http.ResponseWriter, r *http.Request) {
	zones, err := h.Reference.DeliveryZones(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, zones)
}

func (h *Handler) listPaymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.Reference.PaymentMethods(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, methods)
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Reference.CompanySettings(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

// Admin.

func (h *Handler) adminListOrders(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	pageSize := atoiDefault(params.Get("page_size"), 50)
	page := atoiDefault(params.Get("page"), 0)

	orders, err := h.Orders.List(r.Context(), params.Get("status"), pageSize, page*pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *Handler) adminUpdateStatus(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], payload.Status)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrInvalidStatus):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, service.ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "Order not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) adminUpdatePayment(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		PaymentStatus string `json:"payment_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.Orders.UpdatePayment(r.Context(), mux.Vars(r)["id"], payload.PaymentStatus)
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, service.ErrUnknownPaymentMode):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, sql.ErrNoRows):
		http.Error(w, "Order not found", http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (h *Handler) reportSummary(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	to := time.Now()
	from := to.AddDate(0, 0, -30)
	if v := params.Get("from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			from = parsed
		}
	}
	if v := params.Get("to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			to = parsed.AddDate(0, 0, 1)
		}
	}

	summary, err := h.Reports.Summary(r.Context(), from, to)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *Handler) reportTopDishes(w http.ResponseWriter, r *http.Request) {
	top, err := h.Reports.TopDishes(r.Context(), atoiDefault(r.URL.Query().Get("limit"), 10))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if top == nil {
		top = []service.DishSales{}
	}
	writeJSON(w, http.StatusOK, top)
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.Notifications.ListNotifications(r.Context(), atoiDefault(r.URL.Query().Get("limit"), 50))
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	err := h.Notifications.MarkNotificationRead(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Notification not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := h.Notifications.MarkAllNotificationsRead(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func atoiDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
