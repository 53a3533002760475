package domain

import "time"

// CREATE TABLE public.products (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        VARCHAR(200) NOT NULL,
//     category    VARCHAR(100) NOT NULL,
//     price       NUMERIC NOT NULL,
//     description TEXT,
//     created_at  TIMESTAMPTZ DEFAULT NOW()
// );

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;size:200;not null" json:"name"`
	Category    string    `gorm:"column:category;size:100;not null" json:"category"`
	Price       float64   `gorm:"column:price;type:numeric;not null" json:"price"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}
