package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPrice(t *testing.T) {
	tests := map[int64]string{
		0:          "0 сўм",
		500:        "500 сўм",
		1000:       "1 000 сўм",
		25000:      "25 000 сўм",
		180000:     "180 000 сўм",
		1500000:    "1 500 000 сўм",
		1234567890: "1 234 567 890 сўм",
		-2500:      "-2 500 сўм",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPrice(in), in)
	}
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(Order{
		CustomerName: "Алишер",
		Phone:        "+998901234567",
		Region:       "Тошкент",
		Items: []Item{
			{Name: "A", Quantity: 2, Price: 1000},
			{Name: "B", Quantity: 1, Price: 500},
		},
		TotalPrice: 2500,
	})

	want := "🛒 ЯНГИ ЗАКАЗ\n\n" +
		"👤 Мижоз: Алишер\n" +
		"📞 Телефон: +998901234567\n" +
		"📍 Вилоят: Тошкент\n\n" +
		"📦 Товарлар:\n" +
		"1. A - 2 та × 1 000 сўм\n" +
		"2. B - 1 та × 500 сўм\n" +
		"\n💰 Жами: 2 500 сўм"
	assert.Equal(t, want, msg)
}

func TestFormatMessageUsesGivenTotal(t *testing.T) {
	msg := FormatMessage(Order{Items: []Item{{Name: "A", Quantity: 1, Price: 100}}, TotalPrice: 999})
	assert.Contains(t, msg, "💰 Жами: 999 сўм")
}
