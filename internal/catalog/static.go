package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xenking/atlas-parfum/internal/i18n"
)

// StaticRepository serves the embedded catalog from memory. It backs the
// service when no database is configured and feeds cmd/seed-db.
type StaticRepository struct {
	products []Product
	byID     map[string]*Product
}

var _ Repository = (*StaticRepository)(nil)

// Static returns a repository over the embedded eight-perfume catalog.
func Static() *StaticRepository {
	return NewStaticRepository(products)
}

// NewStaticRepository builds an in-memory repository over the given
// products. The slice is not copied; callers must not mutate it afterwards.
func NewStaticRepository(products []Product) *StaticRepository {
	byID := make(map[string]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return &StaticRepository{products: products, byID: byID}
}

// List returns all products in catalog order.
func (r *StaticRepository) List(_ context.Context) ([]Product, error) {
	out := make([]Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns the product with the given ID, or ErrNotFound.
func (r *StaticRepository) GetByID(_ context.Context, id string) (*Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

// ListByCategory returns products belonging to the given fragrance family.
func (r *StaticRepository) ListByCategory(_ context.Context, cat Category) ([]Product, error) {
	var out []Product
	for _, p := range r.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out, nil
}

// products is the embedded catalog. Prices are in Moroccan dirhams.
var products = []Product{
	{
		ID:   "1",
		Name: i18n.Text{AR: "عود ملكي", FR: "Oud Royal", EN: "Royal Oud"},
		Description: i18n.Text{
			AR: "عطر شرقي فاخر يجمع بين العود الطبيعي والمسك الأبيض",
			FR: "Parfum oriental luxueux combinant oud naturel et musc blanc",
			EN: "Luxurious oriental fragrance combining natural oud and white musk",
		},
		Price:    decimal.NewFromInt(899),
		Category: Oriental,
		Image:    "/perfumes/oud-royal.svg",
	},
	{
		ID:   "2",
		Name: i18n.Text{AR: "ياسمين الليل", FR: "Jasmin de Nuit", EN: "Night Jasmine"},
		Description: i18n.Text{
			AR: "عطر زهري رومانسي بنفحات الياسمين والفانيليا",
			FR: "Parfum floral romantique aux notes de jasmin et vanille",
			EN: "Romantic floral fragrance with jasmine and vanilla notes",
		},
		Price:    decimal.NewFromInt(749),
		Category: Floral,
		Image:    "/perfumes/jasmine.svg",
	},
	{
		ID:   "3",
		Name: i18n.Text{AR: "خشب الصندل", FR: "Bois de Santal", EN: "Sandalwood"},
		Description: i18n.Text{
			AR: "عطر خشبي دافئ مع لمسات من الأرز والباتشولي",
			FR: "Parfum boisé chaleureux avec des touches de cèdre et patchouli",
			EN: "Warm woody fragrance with cedar and patchouli touches",
		},
		Price:    decimal.NewFromInt(799),
		Category: Woody,
		Image:    "/perfumes/sandalwood.svg",
	},
	{
		ID:   "4",
		Name: i18n.Text{AR: "برغموت الصيف", FR: "Bergamote d'Été", EN: "Summer Bergamot"},
		Description: i18n.Text{
			AR: "عطر حمضي منعش بنفحات البرغموت والليمون",
			FR: "Parfum citrus rafraîchissant aux notes de bergamote et citron",
			EN: "Refreshing citrus fragrance with bergamot and lemon notes",
		},
		Price:    decimal.NewFromInt(649),
		Category: Citrus,
		Image:    "/perfumes/bergamot.svg",
	},
	{
		ID:   "5",
		Name: i18n.Text{AR: "وردة دمشق", FR: "Rose de Damas", EN: "Damascus Rose"},
		Description: i18n.Text{
			AR: "عطر زهري فاخر من الورد الدمشقي الأصيل",
			FR: "Parfum floral luxueux de rose de Damas authentique",
			EN: "Luxurious floral fragrance from authentic Damascus rose",
		},
		Price:    decimal.NewFromInt(849),
		Category: Floral,
		Image:    "/perfumes/damascus-rose.svg",
	},
	{
		ID:   "6",
		Name: i18n.Text{AR: "عنبر ذهبي", FR: "Ambre Doré", EN: "Golden Amber"},
		Description: i18n.Text{
			AR: "عطر شرقي دافئ بنفحات العنبر والفانيليا",
			FR: "Parfum oriental chaleureux aux notes d'ambre et vanille",
			EN: "Warm oriental fragrance with amber and vanilla notes",
		},
		Price:    decimal.NewFromInt(879),
		Category: Oriental,
		Image:    "/perfumes/amber.svg",
	},
	{
		ID:   "7",
		Name: i18n.Text{AR: "أرز الأطلس", FR: "Cèdre de l'Atlas", EN: "Atlas Cedar"},
		Description: i18n.Text{
			AR: "عطر خشبي قوي مستوحى من غابات الأرز",
			FR: "Parfum boisé puissant inspiré des forêts de cèdre",
			EN: "Powerful woody fragrance inspired by cedar forests",
		},
		Price:    decimal.NewFromInt(779),
		Category: Woody,
		Image:    "/perfumes/cedar.svg",
	},
	{
		ID:   "8",
		Name: i18n.Text{AR: "نيرولي الربيع", FR: "Néroli Printanier", EN: "Spring Neroli"},
		Description: i18n.Text{
			AR: "عطر حمضي زهري منعش بنفحات النيرولي وزهر البرتقال",
			FR: "Parfum citrus floral rafraîchissant aux notes de néroli et fleur d'oranger",
			EN: "Refreshing citrus floral fragrance with neroli and orange blossom notes",
		},
		Price:    decimal.NewFromInt(699),
		Category: Citrus,
		Image:    "/perfumes/neroli.svg",
	},
}
