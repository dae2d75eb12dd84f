package catalog

import (
	"github.com/angelmondragon/pastaprego-backend/pkg/enums"
	"github.com/angelmondragon/pastaprego-backend/pkg/types"
)

const imageBase = "/images/products/"

var defaultCategories = []Category{
	{ID: enums.CategoryPastasClasicas, Name: "Pastas Clásicas"},
	{ID: enums.CategoryPastasEspeciales, Name: "Especialidades"},
	{ID: enums.CategorySalsas, Name: "Salsas Extra"},
	{ID: enums.CategoryBebidas, Name: "Bebidas"},
	{ID: enums.CategoryPostres, Name: "Postres"},
}

var defaultExtras = []Extra{
	{ID: "prot-1", Name: "Pollo a la plancha", Price: types.MustParseMoney("3.50"), Kind: enums.ExtraKindProtein},
	{ID: "prot-2", Name: "Albóndigas (2 pz)", Price: types.MustParseMoney("4.00"), Kind: enums.ExtraKindProtein},
	{ID: "prot-3", Name: "Tocino Crujiente", Price: types.MustParseMoney("2.50"), Kind: enums.ExtraKindProtein},
	{ID: "prot-4", Name: "Camarones", Price: types.MustParseMoney("5.00"), Kind: enums.ExtraKindProtein},

	{ID: "top-1", Name: "Champiñones", Price: types.MustParseMoney("1.50"), Kind: enums.ExtraKindTopping},
	{ID: "top-2", Name: "Espinaca Fresca", Price: types.MustParseMoney("1.00"), Kind: enums.ExtraKindTopping},
	{ID: "top-3", Name: "Brócoli al vapor", Price: types.MustParseMoney("1.50"), Kind: enums.ExtraKindTopping},
	{ID: "top-4", Name: "Tomate Deshidratado", Price: types.MustParseMoney("2.00"), Kind: enums.ExtraKindTopping},
	{ID: "top-5", Name: "Tomate Cherry", Price: types.MustParseMoney("1.50"), Kind: enums.ExtraKindTopping},
	{ID: "top-6", Name: "Aceituna Negra", Price: types.MustParseMoney("1.00"), Kind: enums.ExtraKindTopping},
	{ID: "top-7", Name: "Parmesano Romano", Price: types.MustParseMoney("2.00"), Kind: enums.ExtraKindTopping},
	{ID: "top-8", Name: "Parmesano Reggiano", Price: types.MustParseMoney("2.50"), Kind: enums.ExtraKindTopping},
}

var defaultProducts = []Product{
	{
		ID:          "p1",
		Name:        "Spaghetti Pomodoro",
		Description: "Nuestra pasta fresca con salsa de tomate San Marzano y albahaca fresca.",
		Price:       types.MustParseMoney("12.50"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "spaghetti-pomodoro.webp",
	},
	{
		ID:          "p2",
		Name:        "Fettuccine Alfredo",
		Description: "Cremosa salsa de parmesano reggiano y mantequilla.",
		Price:       types.MustParseMoney("13.90"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "fettuccine-alfredo.webp",
	},
	{
		ID:          "p3",
		Name:        "Penne Arrabbiata",
		Description: "Salsa de tomate picante con ajo y perejil.",
		Price:       types.MustParseMoney("11.90"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "penne-arrabbiata.webp",
	},
	{
		ID:          "p6",
		Name:        "Boloñesa Originale",
		Description: "La auténtica receta de Bologna, cocinada a fuego lento por 8 horas.",
		Price:       types.MustParseMoney("15.50"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "bolonesa-originale.webp",
	},
	{
		ID:          "p7",
		Name:        "La Alfredo Clásica",
		Description: "Doble crema, pimienta negra molida y extra queso.",
		Price:       types.MustParseMoney("14.50"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "alfredo-clasica.webp",
	},
	{
		ID:          "p8",
		Name:        "Carbonara Romana",
		Description: "Sin crema. Solo yema de huevo, pecorino, guanciale y pimienta negra.",
		Price:       types.MustParseMoney("16.00"),
		CategoryID:  enums.CategoryPastasClasicas,
		Image:       imageBase + "carbonara-romana.webp",
	},
	{
		ID:          "p4",
		Name:        "Ravioli de Trufa",
		Description: "Rellenos de setas y trufa negra en salsa ligera de mantequilla y salvia.",
		Price:       types.MustParseMoney("18.00"),
		CategoryID:  enums.CategoryPastasEspeciales,
		Image:       imageBase + "ravioli-de-trufa.webp",
	},
	{
		ID:          "p5",
		Name:        "Lasagna de la Nonna",
		Description: "Capas de pasta fresca, boloñesa cocida a fuego lento y bechamel.",
		Price:       types.MustParseMoney("16.50"),
		CategoryID:  enums.CategoryPastasEspeciales,
		Image:       imageBase + "lasagna-nona.webp",
	},
	{
		ID:          "p9",
		Name:        "Chipotle Di Mexico",
		Description: "Fusión italo-mexicana. Pasta cremosa con un toque ahumado de chipotle.",
		Price:       types.MustParseMoney("15.90"),
		CategoryID:  enums.CategoryPastasEspeciales,
		Image:       imageBase + "chipotle-di-mexico.webp",
	},
	{
		ID:          "p10",
		Name:        "Veggie Mediterránea",
		Description: "Salteada con pimientos, calabacín, berenjena y aceite de oliva virgen extra.",
		Price:       types.MustParseMoney("14.90"),
		CategoryID:  enums.CategoryPastasEspeciales,
		Image:       imageBase + "veggie-mediterranea.webp",
	},
	{
		ID:          "p11",
		Name:        "Funghi Supremo",
		Description: "Mezcla de hongos silvestres, porcini y aceite de trufa blanca.",
		Price:       types.MustParseMoney("17.50"),
		CategoryID:  enums.CategoryPastasEspeciales,
		Image:       imageBase + "funghi-supremo.webp",
	},
	{
		ID:          "s1",
		Name:        "Pesto Genovese",
		Description: "Porción extra de nuestro pesto casero.",
		Price:       types.MustParseMoney("3.50"),
		CategoryID:  enums.CategorySalsas,
		Image:       imageBase + "pesto-genovese.webp",
	},
	{
		ID:          "s2",
		Name:        "Boloñesa",
		Description: "Ragú clásico de carne.",
		Price:       types.MustParseMoney("4.50"),
		CategoryID:  enums.CategorySalsas,
		Image:       imageBase + "bolanesa.webp",
	},
	{
		ID:          "b1",
		Name:        "Limonada Siciliana",
		Description: "Limonada casera con menta.",
		Price:       types.MustParseMoney("4.00"),
		CategoryID:  enums.CategoryBebidas,
		Image:       imageBase + "limonada-siciliana.webp",
	},
	{
		ID:          "b2",
		Name:        "Vino Tinto de la Casa",
		Description: "Copa de Chianti clásico.",
		Price:       types.MustParseMoney("6.00"),
		CategoryID:  enums.CategoryBebidas,
		Image:       imageBase + "vino-tinto.webp",
	},
	{
		ID:          "d1",
		Name:        "Tiramisú",
		Description: "El clásico italiano con mascarpone y café espresso.",
		Price:       types.MustParseMoney("7.50"),
		CategoryID:  enums.CategoryPostres,
		Image:       imageBase + "tiramisu.webp",
	},
	{
		ID:          "d2",
		Name:        "Panna Cotta",
		Description: "Con coulis de frutos rojos.",
		Price:       types.MustParseMoney("6.50"),
		CategoryID:  enums.CategoryPostres,
		Image:       imageBase + "panna-cotta.webp",
	},
}
