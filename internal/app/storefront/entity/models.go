package entity

import (
	"time"

	"github.com/google/uuid"
)

// Product представляет товар витрины
// Поля Rating и NumReviews денормализованы: они всегда должны равняться
// агрегату по текущему набору отзывов товара и пересчитываются целиком
// при каждой записи отзыва
type Product struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Slug        string    `json:"slug" gorm:"uniqueIndex;not null"` // Уникальный слаг для URL страницы товара
	Category    string    `json:"category" gorm:"index"`
	Brand       string    `json:"brand"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Rating      float64   `json:"rating" gorm:"default:0"`      // Средняя оценка по отзывам
	NumReviews  int       `json:"num_reviews" gorm:"default:0"` // Количество отзывов
	IsFeatured  bool      `json:"is_featured"`
	Banner      string    `json:"banner"`
	CreatedAt   time.Time `json:"created_at"`
}

// User внешняя учетная запись из Auth Service
// Сервис витрины ссылается на нее только для отображения имени автора отзыва
type User struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
}

// Review представляет отзыв пользователя о товаре
// Композитный уникальный индекс (product_id, user_id) гарантирует
// не более одного отзыва на пару пользователь-товар на уровне хранилища
type Review struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;uniqueIndex:idx_reviews_product_user;not null"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;uniqueIndex:idx_reviews_product_user;not null"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"not null"`
	Rating      int       `json:"rating" gorm:"not null"` // Оценка от 1 до 5
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	User        *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Product     *Product  `json:"-" gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// RatingSummary агрегат по отзывам товара
// Среднее считается полным пересчетом по всем отзывам, не инкрементально
type RatingSummary struct {
	Rating     float64 `json:"rating"`
	NumReviews int64   `json:"num_reviews"`
}

// ReviewEvent представляет событие отзыва для Kafka
type ReviewEvent struct {
	EventType string    `json:"event_type"` // REVIEW_CREATED, REVIEW_UPDATED
	ReviewID  string    `json:"review_id"`
	ProductID string    `json:"product_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Timestamp time.Time `json:"timestamp"`
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType string    `json:"event_type"` // PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Timestamp time.Time `json:"timestamp"`
}

// CategoryCount количество товаров в категории
type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}
