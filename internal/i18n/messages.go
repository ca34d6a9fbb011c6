package i18n

// Text is a per-language string triple. All three languages are always
// populated for catalog and UI copy.
type Text struct {
	AR string `json:"ar"`
	FR string `json:"fr"`
	EN string `json:"en"`
}

// In returns the string for the given language, defaulting to English for
// anything unrecognised.
func (t Text) In(lang Language) string {
	switch lang {
	case Arabic:
		return t.AR
	case French:
		return t.FR
	default:
		return t.EN
	}
}

// T resolves a message key for the given language. Unknown keys resolve to
// the key itself so a missing entry degrades to visible-but-ugly instead of
// crashing the render path.
func T(key string, lang Language) string {
	msg, ok := messages[key]
	if !ok {
		return key
	}
	return msg.In(lang)
}

// Messages resolves the full message table for one language, keyed by
// message key. This is what the storefront loads to render its copy.
func Messages(lang Language) map[string]string {
	out := make(map[string]string, len(messages))
	for key := range messages {
		out[key] = T(key, lang)
	}
	return out
}

var messages = map[string]Text{
	// Navigation
	"nav.home":     {AR: "الرئيسية", FR: "Accueil", EN: "Home"},
	"nav.products": {AR: "المنتجات", FR: "Produits", EN: "Products"},
	"nav.about":    {AR: "من نحن", FR: "À propos", EN: "About Us"},
	"nav.contact":  {AR: "اتصل بنا", FR: "Contact", EN: "Contact"},
	"nav.privacy":  {AR: "سياسة الخصوصية", FR: "Confidentialité", EN: "Privacy"},
	"nav.cart":     {AR: "عربة التسوق", FR: "Panier", EN: "Cart"},

	// Hero
	"hero.tagline": {AR: "فن العطور", FR: "L'Art du Parfum", EN: "The Art of Perfume"},
	"hero.explore": {AR: "استكشف المجموعة", FR: "Explorer la Collection", EN: "Explore Collection"},

	// Product
	"product.addToCart": {AR: "أضف إلى السلة", FR: "Ajouter au Panier", EN: "Add to Cart"},
	"product.price":     {AR: "السعر", FR: "Prix", EN: "Price"},
	"product.category":  {AR: "الفئة", FR: "Catégorie", EN: "Category"},

	// Categories
	"category.oriental": {AR: "شرقي", FR: "Oriental", EN: "Oriental"},
	"category.floral":   {AR: "زهري", FR: "Floral", EN: "Floral"},
	"category.woody":    {AR: "خشبي", FR: "Boisé", EN: "Woody"},
	"category.citrus":   {AR: "حمضي", FR: "Agrumes", EN: "Citrus"},

	// Cart
	"cart.title":            {AR: "عربة التسوق", FR: "Votre Panier", EN: "Your Cart"},
	"cart.empty":            {AR: "عربة التسوق فارغة", FR: "Votre panier est vide", EN: "Your cart is empty"},
	"cart.quantity":         {AR: "الكمية", FR: "Quantité", EN: "Quantity"},
	"cart.remove":           {AR: "إزالة", FR: "Retirer", EN: "Remove"},
	"cart.subtotal":         {AR: "المجموع الفرعي", FR: "Sous-total", EN: "Subtotal"},
	"cart.total":            {AR: "المجموع", FR: "Total", EN: "Total"},
	"cart.checkout":         {AR: "إتمام الطلب", FR: "Passer Commande", EN: "Checkout"},
	"cart.continueShopping": {AR: "متابعة التسوق", FR: "Continuer les Achats", EN: "Continue Shopping"},

	// Checkout
	"checkout.title":          {AR: "إتمام الطلب", FR: "Finaliser la Commande", EN: "Complete Order"},
	"checkout.customerInfo":   {AR: "معلومات العميل", FR: "Informations Client", EN: "Customer Information"},
	"checkout.fullName":       {AR: "الاسم الكامل", FR: "Nom Complet", EN: "Full Name"},
	"checkout.email":          {AR: "البريد الإلكتروني", FR: "Email", EN: "Email"},
	"checkout.phone":          {AR: "رقم الهاتف", FR: "Téléphone", EN: "Phone Number"},
	"checkout.address":        {AR: "العنوان", FR: "Adresse", EN: "Address"},
	"checkout.paymentMethod":  {AR: "طريقة الدفع", FR: "Mode de Paiement", EN: "Payment Method"},
	"checkout.cashOnDelivery": {AR: "الدفع عند الاستلام", FR: "Paiement à la Livraison", EN: "Cash on Delivery"},
	"checkout.placeOrder":     {AR: "تأكيد الطلب", FR: "Confirmer la Commande", EN: "Place Order"},
	"checkout.orderConfirmed": {AR: "تم تأكيد طلبك!", FR: "Commande Confirmée!", EN: "Order Confirmed!"},
	"checkout.thankYou":       {AR: "شكراً لك على طلبك", FR: "Merci pour votre commande", EN: "Thank you for your order"},
	"checkout.orderNumber":    {AR: "رقم الطلب", FR: "Numéro de Commande", EN: "Order Number"},

	// About
	"about.title": {AR: "من نحن", FR: "À Propos de Nous", EN: "About Us"},
	"about.description": {
		AR: "نحن متخصصون في صناعة العطور الفاخرة التي تجمع بين التقاليد والحداثة. كل عطر هو تحفة فنية تروي قصة فريدة.",
		FR: "Nous sommes spécialisés dans la création de parfums de luxe qui allient tradition et modernité. Chaque parfum est une œuvre d'art qui raconte une histoire unique.",
		EN: "We specialize in crafting luxury perfumes that blend tradition with modernity. Each fragrance is a masterpiece that tells a unique story.",
	},

	// Contact
	"contact.title":   {AR: "اتصل بنا", FR: "Contactez-nous", EN: "Contact Us"},
	"contact.name":    {AR: "الاسم", FR: "Nom", EN: "Name"},
	"contact.message": {AR: "الرسالة", FR: "Message", EN: "Message"},
	"contact.send":    {AR: "إرسال", FR: "Envoyer", EN: "Send"},

	// Footer
	"footer.description": {AR: "عطور فاخرة تجمع بين الفن والأناقة", FR: "Parfums de luxe alliant art et élégance", EN: "Luxury perfumes combining art and elegance"},
	"footer.quickLinks":  {AR: "روابط سريعة", FR: "Liens Rapides", EN: "Quick Links"},
	"footer.followUs":    {AR: "تابعنا", FR: "Suivez-nous", EN: "Follow Us"},
	"footer.rights":      {AR: "جميع الحقوق محفوظة", FR: "Tous droits réservés", EN: "All rights reserved"},

	// Common
	"common.currency": {AR: "د.م.", FR: "DH", EN: "MAD"},
	"common.loading":  {AR: "جاري التحميل...", FR: "Chargement...", EN: "Loading..."},
	"common.error":    {AR: "حدث خطأ", FR: "Une erreur s'est produite", EN: "An error occurred"},
}
