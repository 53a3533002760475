package domain

import "time"

// CREATE TABLE public.customers (
//     id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name       VARCHAR(100) NOT NULL,
//     email      VARCHAR(100) UNIQUE NOT NULL,
//     created_at TIMESTAMPTZ DEFAULT NOW()
// );

type Customer struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"column:name;size:100;not null" json:"name"`
	Email     string    `gorm:"column:email;size:100;unique;not null" json:"email"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Customer) TableName() string {
	return "customers"
}
