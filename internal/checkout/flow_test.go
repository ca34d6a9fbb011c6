package checkout

import (
	"regexp"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xenking/atlas-parfum/internal/catalog"
	"github.com/xenking/atlas-parfum/internal/i18n"
	"github.com/xenking/atlas-parfum/internal/session"
)

// --- Helpers ---

type mapStore struct {
	data map[string][]byte
}

func (s *mapStore) Get(key string) ([]byte, error) {
	raw, ok := s.data[key]
	if !ok {
		return nil, session.ErrNotFound
	}
	return raw, nil
}

func (s *mapStore) Set(key string, value []byte) error {
	s.data[key] = value
	return nil
}

func newSessionWithCart(t *testing.T) *session.Session {
	t.Helper()
	s := session.New(&mapStore{data: make(map[string][]byte)}, zap.NewNop())
	s.AddToCart(catalog.Product{
		ID:       "1",
		Name:     i18n.Text{AR: "ن", FR: "n", EN: "n"},
		Price:    decimal.NewFromInt(899),
		Category: catalog.Oriental,
	})
	return s
}

func validInfo() CustomerInfo {
	return CustomerInfo{
		FullName: "Nadia Alaoui",
		Email:    "nadia@example.com",
		Phone:    "+212600000000",
		Address:  "12 Rue des Orangers, Casablanca",
	}
}

// --- Tests ---

func TestBegin_EmptyCartRejected(t *testing.T) {
	s := session.New(&mapStore{data: make(map[string][]byte)}, zap.NewNop())
	f := NewFlow(s)

	err := f.Begin()
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, StepCart, f.Step())
}

func TestBegin_NonEmptyCartAdvances(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))

	require.NoError(t, f.Begin())
	assert.Equal(t, StepInfo, f.Step())
}

func TestSubmitInfo_RequiresAllFields(t *testing.T) {
	cases := []struct {
		field  string
		mutate func(*CustomerInfo)
	}{
		{"fullName", func(i *CustomerInfo) { i.FullName = "   " }},
		{"email", func(i *CustomerInfo) { i.Email = "" }},
		{"phone", func(i *CustomerInfo) { i.Phone = "\t" }},
		{"address", func(i *CustomerInfo) { i.Address = " \n " }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			f := NewFlow(newSessionWithCart(t))
			require.NoError(t, f.Begin())

			info := validInfo()
			tc.mutate(&info)

			err := f.SubmitInfo(info)

			var mfErr *MissingFieldError
			require.ErrorAs(t, err, &mfErr)
			assert.Equal(t, tc.field, mfErr.Field)
			assert.Equal(t, StepInfo, f.Step(), "validation failure must not advance")
		})
	}
}

func TestSubmitInfo_TrimsAndAdvances(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))
	require.NoError(t, f.Begin())

	info := validInfo()
	info.FullName = "  Nadia Alaoui  "
	require.NoError(t, f.SubmitInfo(info))

	assert.Equal(t, StepPayment, f.Step())
	assert.Equal(t, "Nadia Alaoui", f.Info().FullName)
}

func TestBack_PreservesEnteredInfo(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))
	require.NoError(t, f.Begin())
	require.NoError(t, f.SubmitInfo(validInfo()))

	require.NoError(t, f.Back())
	assert.Equal(t, StepInfo, f.Step())
	assert.Equal(t, validInfo(), f.Info(), "revisiting info must not clear fields")

	require.NoError(t, f.Back())
	assert.Equal(t, StepCart, f.Step())
	assert.Equal(t, validInfo(), f.Info())
}

func TestBack_FromCartRejected(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))

	err := f.Back()
	var itErr *InvalidTransitionError
	require.ErrorAs(t, err, &itErr)
	assert.Equal(t, StepCart, itErr.From)
}

func TestPlaceOrder_GeneratesNumberAndClearsCart(t *testing.T) {
	s := newSessionWithCart(t)
	f := NewFlow(s)
	require.NoError(t, f.Begin())
	require.NoError(t, f.SubmitInfo(validInfo()))

	num, err := f.PlaceOrder()
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^ORD-[A-Z0-9]{9}$`), num)
	assert.Equal(t, num, f.OrderNumber())
	assert.Equal(t, StepConfirmed, f.Step())
	assert.Empty(t, s.Items(), "confirming the order must clear the cart")
	assert.Equal(t, 0, s.ItemCount())
}

func TestPlaceOrder_OnlyFromPayment(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))

	for _, step := range []func() error{
		func() error { _, err := f.PlaceOrder(); return err }, // from cart
	} {
		var itErr *InvalidTransitionError
		require.ErrorAs(t, step(), &itErr)
	}

	require.NoError(t, f.Begin())
	_, err := f.PlaceOrder() // from info
	var itErr *InvalidTransitionError
	require.ErrorAs(t, err, &itErr)
	assert.Equal(t, StepInfo, itErr.From)
}

func TestConfirmed_IsTerminalUntilReset(t *testing.T) {
	f := NewFlow(newSessionWithCart(t))
	require.NoError(t, f.Begin())
	require.NoError(t, f.SubmitInfo(validInfo()))
	_, err := f.PlaceOrder()
	require.NoError(t, err)

	var itErr *InvalidTransitionError
	require.ErrorAs(t, f.Begin(), &itErr)
	require.ErrorAs(t, f.Back(), &itErr)
	require.ErrorAs(t, f.SubmitInfo(validInfo()), &itErr)

	f.Reset()
	assert.Equal(t, StepCart, f.Step())
	assert.Empty(t, f.OrderNumber())
	assert.Equal(t, CustomerInfo{}, f.Info())
}

func TestOrderNumbers_Vary(t *testing.T) {
	seen := make(map[string]bool)
	for range 50 {
		n := newOrderNumber()
		require.Len(t, n, len("ORD-")+9)
		seen[n] = true
	}
	// Not a uniqueness guarantee, just a sanity check on the generator.
	assert.Greater(t, len(seen), 1)
}
