package http

// ListFavorites godoc
// @Summary List active favorites
// @Description Retrieve the authenticated customer's active favorites, newest first, served from the per-customer view cache
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Success 200 {array} object{id=string,customer=int,product_id=int,product_data=object,active=bool,created_at=string,updated_at=string}
// @Failure 401 {object} object{error=string}
// @Router /favorites [get]
func (h *FavoriteHandler) ListFavoritesDoc() {}

// CreateFavorite godoc
// @Summary Create a new favorite
// @Description Add a catalog product to the authenticated customer's favorites
// @Tags Favorites
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body object{product_id=int} true "Product to favorite"
// @Success 201 {object} object{id=string,customer=int,product_id=int,product_data=object,active=bool}
// @Failure 400 {object} object{detail=string} "Produto já está nos favoritos."
// @Failure 404 {object} object{detail=string} "Produto não encontrado."
// @Failure 502 {object} object{error=string}
// @Router /favorites [post]
func (h *FavoriteHandler) CreateFavoriteDoc() {}

// GetFavorite godoc
// @Summary Retrieve a favorite by ID
// @Description Retrieve one of the authenticated customer's favorites; inactive favorites return 404
// @Tags Favorites
// @Security BearerAuth
// @Produce json
// @Param id path string true "Favorite ID"
// @Success 200 {object} object{id=string,customer=int,product_id=int,product_data=object,active=bool}
// @Failure 403 {object} object{detail=string}
// @Failure 404 {object} object{detail=string}
// @Router /favorites/{id} [get]
func (h *FavoriteHandler) GetFavoriteDoc() {}

// DeactivateFavorite godoc
// @Summary Deactivate a favorite
// @Description Soft-delete a favorite; the row is retained and can be re-favorited later
// @Tags Favorites
// @Security BearerAuth
// @Param id path string true "Favorite ID"
// @Success 204
// @Failure 403 {object} object{detail=string}
// @Failure 404 {object} object{detail=string}
// @Router /favorites/{id} [delete]
func (h *FavoriteHandler) DeactivateFavoriteDoc() {}
