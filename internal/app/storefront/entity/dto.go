package entity

// SubmitReviewRequest - запрос на создание или обновление отзыва
// Повторная отправка тем же пользователем обновляет существующий отзыв
type SubmitReviewRequest struct {
	ProductID   string `json:"product_id" validate:"required,uuid4"`
	Title       string `json:"title" validate:"required,min=3,max=120"`
	Description string `json:"description" validate:"required,min=10,max=1000"`
	Rating      int    `json:"rating" validate:"required,min=1,max=5"`
}

// CreateProductRequest - запрос на создание товара (админ)
type CreateProductRequest struct {
	Name        string  `json:"name" validate:"required,min=3,max=255"`
	Slug        string  `json:"slug" validate:"required,min=3,max=255"`
	Category    string  `json:"category" validate:"required"`
	Brand       string  `json:"brand" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Stock       int     `json:"stock" validate:"gte=0"`
	IsFeatured  bool    `json:"is_featured"`
	Banner      string  `json:"banner"`
}

// UpdateProductRequest - запрос на частичное обновление товара (админ)
type UpdateProductRequest struct {
	Name        string  `json:"name" validate:"omitempty,min=3,max=255"`
	Slug        string  `json:"slug" validate:"omitempty,min=3,max=255"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"omitempty,gt=0"`
	Stock       *int    `json:"stock" validate:"omitempty,gte=0"`
	IsFeatured  *bool   `json:"is_featured"`
	Banner      string  `json:"banner"`
}

// SearchProductsRequest - параметры каталожного поиска
// Пустые значения и "all" означают отсутствие фильтра
type SearchProductsRequest struct {
	Query     string
	Category  string
	PriceMin  float64
	PriceMax  float64
	MinRating float64
	Sort      string // lowest, highest, rating, newest
	Page      int
	Limit     int
}

// ProductListResponse - страница каталога
type ProductListResponse struct {
	Products   []Product `json:"products"`
	Total      int64     `json:"total"`
	TotalPages int       `json:"total_pages"`
	Page       int       `json:"page"`
}

// ReviewListResponse - ответ со списком отзывов товара
type ReviewListResponse struct {
	Reviews []Review `json:"reviews"`
	Total   int      `json:"total"`
}

// CategoryListResponse - список категорий с количеством товаров
type CategoryListResponse struct {
	Categories []CategoryCount `json:"categories"`
}

// ErrorResponse - стандартный ответ об ошибке
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// SuccessResponse - стандартный ответ об успехе
type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
