package domain

var (
	MessageSuccessGetFavorites   = "success get favorite recipes"
	MessageSuccessAddFavorite    = "recipe added to favorites"
	MessageSuccessRemoveFavorite = "recipe removed from favorites"
	MessageFailedGetFavorites    = "failed to get favorite recipes"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"
)

type (
	// FavoriteRequest lets a single POST toggle the mark: "no" removes it.
	FavoriteRequest struct {
		Favorite string `json:"favorite" form:"favorite"`
	}

	FavoriteIDsResponse struct {
		IDs []uint `json:"ids"`
	}

	FavoritesResponse struct {
		IDs     []uint   `json:"ids"`
		Recipes []Recipe `json:"recipes"`
	}
)
