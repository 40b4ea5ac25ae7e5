package handlers

import (
	"lofireads/internal/cart"
	"lofireads/internal/catalog"
	"lofireads/internal/services"
	"lofireads/internal/storage"
	"lofireads/internal/stores"
)

type Deps struct {
	BookHandler     *BookHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	OrderHandler    *OrderHandler
	ReviewHandler   *ReviewHandler
	AccountHandler  *AccountHandler
	AdminHandler    *AdminHandler
}

func NewDeps(kv *storage.Store, auth *services.AuthService) *Deps {
	cat := catalog.New()
	carts := cart.NewManager()

	wishStore := stores.NewWishlistStore(kv)
	orderStore := stores.NewOrderStore(kv)
	reviewStore := stores.NewReviewStore(kv)

	cartSvc := services.NewCartService(carts, cat)
	wishSvc := services.NewWishlistService(wishStore, cat, carts)
	orderSvc := services.NewOrderService(carts, orderStore)

	return &Deps{
		BookHandler:     &BookHandler{Catalog: cat, Reviews: reviewStore, Wish: wishSvc, Auth: auth},
		CartHandler:     &CartHandler{Cart: cartSvc},
		WishlistHandler: &WishlistHandler{Wish: wishSvc},
		OrderHandler:    &OrderHandler{Cart: cartSvc, Order: orderSvc, Orders: orderStore},
		ReviewHandler:   &ReviewHandler{Reviews: reviewStore},
		AccountHandler:  &AccountHandler{Users: auth.Users, Orders: orderStore, Reviews: reviewStore},
		AdminHandler:    &AdminHandler{Orders: orderStore},
	}
}
