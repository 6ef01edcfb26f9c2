package model

// Review is one customer's rating of a product. A user holds at most one
// review per product.
type Review struct {
	BaseModel
	ProductID string `gorm:"type:varchar(64);not null;uniqueIndex:idx_reviews_product_user,priority:1" json:"product_id"`
	UserID    string `gorm:"type:varchar(255);not null;uniqueIndex:idx_reviews_product_user,priority:2" json:"user_id"`
	UserName  string `gorm:"type:varchar(255)" json:"user_name"`
	Rating    int    `gorm:"not null" json:"rating" validate:"min=1,max=5"`
	Comment   string `gorm:"type:text;not null" json:"comment" validate:"required"`
	Verified  bool   `gorm:"default:false" json:"verified"`
}

// ReviewSummary is the public listing of a product's reviews.
type ReviewSummary struct {
	Reviews       []Review `json:"reviews"`
	Count         int      `json:"count"`
	AverageRating float64  `json:"average_rating"`
}

func Summarize(reviews []Review) ReviewSummary {
	summary := ReviewSummary{Reviews: reviews, Count: len(reviews)}
	if summary.Reviews == nil {
		summary.Reviews = []Review{}
	}
	if len(reviews) == 0 {
		return summary
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	summary.AverageRating = float64(sum) / float64(len(reviews))
	return summary
}
