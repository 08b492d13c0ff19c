package memory

import "github.com/dwikikusuma/storefront/internal/catalog/domain"

func SeedCategories() []domain.Category {
	return []domain.Category{
		{ID: "electronics", Name: "Электроника", Icon: "Smartphone", SortOrder: 1},
		{ID: "clothing", Name: "Кийим", Icon: "Shirt", SortOrder: 2},
		{ID: "home", Name: "Уй учун", Icon: "Home", SortOrder: 3},
		{ID: "sports", Name: "Спорт", Icon: "Dumbbell", SortOrder: 4},
		{ID: "beauty", Name: "Гўзаллик", Icon: "Sparkles", SortOrder: 5},
	}
}

func SeedProducts() []domain.Product {
	const img = "https://images.unsplash.com/"
	return []domain.Product{
		{ID: "1", Name: "Симсиз қулоқчин Pro", Price: 450000, Image: img + "photo-1505740420928-5e560c06d30e?w=400&h=400&fit=crop", CategoryID: "electronics", Description: "Юқори сифатли овоз ва узоқ батарея муддати", IsActive: true, SortOrder: 1},
		{ID: "2", Name: "Ақлли соат Ultra", Price: 890000, Image: img + "photo-1523275335684-37898b6baf30?w=400&h=400&fit=crop", CategoryID: "electronics", Description: "Фитнес трекер ва уйқу мониторинги", IsActive: true, SortOrder: 2},
		{ID: "3", Name: "Эркаклар костюми", Price: 1200000, Image: img + "photo-1594938298603-c8148c4dae35?w=400&h=400&fit=crop", CategoryID: "clothing", Description: "Классик услубда замонавий костюм", IsActive: true, SortOrder: 3},
		{ID: "4", Name: "Аёллар сумкаси", Price: 380000, Image: img + "photo-1584917865442-de89df76afd3?w=400&h=400&fit=crop", CategoryID: "clothing", Description: "Ҳақиқий терисидан тайёрланган", IsActive: true, SortOrder: 4},
		{ID: "5", Name: "Кофе машинаси", Price: 1500000, Image: img + "photo-1517668808822-9ebb02f2a0e6?w=400&h=400&fit=crop", CategoryID: "home", Description: "Автоматик эспрессо ва капучино", IsActive: true, SortOrder: 5},
		{ID: "6", Name: "Декоратив чироқ", Price: 250000, Image: img + "photo-1507003211169-0a1dd7228f2d?w=400&h=400&fit=crop", CategoryID: "home", Description: "LED ёруғлик ва минимал дизайн", IsActive: true, SortOrder: 6},
		{ID: "7", Name: "Йога гиламчаси", Price: 180000, Image: img + "photo-1601925260368-ae2f83cf8b7f?w=400&h=400&fit=crop", CategoryID: "sports", Description: "Антислип юза ва қалин материал", IsActive: true, SortOrder: 7},
		{ID: "8", Name: "Спорт чақчон", Price: 650000, Image: img + "photo-1542291026-7eec264c27ff?w=400&h=400&fit=crop", CategoryID: "sports", Description: "Енгил ва қулай спорт пойабзали", IsActive: true, SortOrder: 8},
		{ID: "9", Name: "Атир набори", Price: 720000, Image: img + "photo-1541643600914-78b084683601?w=400&h=400&fit=crop", CategoryID: "beauty", Description: "Франция ишлаб чиқаришидан", IsActive: true, SortOrder: 9},
		{ID: "10", Name: "Терини парвариш тўплами", Price: 340000, Image: img + "photo-1556228578-8c89e6adf883?w=400&h=400&fit=crop", CategoryID: "beauty", Description: "Табиий ингредиентлар асосида", IsActive: true, SortOrder: 10},
		{ID: "11", Name: "Портатив зарядка", Price: 290000, Image: img + "photo-1609091839311-d5365f9ff1c5?w=400&h=400&fit=crop", CategoryID: "electronics", Description: "20000mAh сиғими ва тез зарядлаш", IsActive: true, SortOrder: 11},
		{ID: "12", Name: "Пиджак", Price: 780000, Image: img + "photo-1507679799987-c73779587ccf?w=400&h=400&fit=crop", CategoryID: "clothing", Description: "Ёзги енгил пиджак", IsActive: true, SortOrder: 12},
	}
}
