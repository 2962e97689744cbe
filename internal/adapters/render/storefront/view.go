package storefront

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/lioncurt/shopfront-cli/internal/domain"
	"github.com/lioncurt/shopfront-cli/internal/ports"
)

// lowStockThreshold is where the stock column switches to the warning color.
const lowStockThreshold = 5

// ProductListOptions describe the listing header.
type ProductListOptions struct {
	Query   string
	Total   int
	HasMore bool
}

// RenderProducts renders the catalog listing, browse or search.
func RenderProducts(products []domain.Product, opts ProductListOptions) (string, error) {
	return render(func(s styles) string {
		return renderProducts(products, opts, s)
	})
}

func renderProducts(products []domain.Product, opts ProductListOptions, s styles) string {
	title := "Products"
	if opts.Query != "" {
		title = fmt.Sprintf("Search: %q", opts.Query)
	}
	header := fmt.Sprintf("showing %d of %d", len(products), opts.Total)
	if opts.HasMore {
		header += " (more available)"
	}

	lines := []string{
		s.title.Render(title),
		s.header.Render(header),
	}

	if len(products) == 0 {
		lines = append(lines, s.empty.Render("No products found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, product := range products {
		lines = append(lines, s.section.Render(renderProductRow(product, s)))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderProductRow(product domain.Product, s styles) string {
	parts := []string{
		fmt.Sprintf("%s  %s", s.name.Render(product.Name), s.meta.Render(string(product.ID))),
		fmt.Sprintf("  %s  %s  %s",
			s.price.Render(money(product.Price)),
			stockBadge(product.Stock, s),
			s.meta.Render(categoryBrand(product))),
	}
	if product.Description != "" {
		parts = append(parts, "  "+s.detail.Render(truncate(product.Description, 72)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderProductDetail renders the full detail view of one product.
func RenderProductDetail(product domain.Product) (string, error) {
	return render(func(s styles) string {
		return renderProductDetail(product, s)
	})
}

func renderProductDetail(product domain.Product, s styles) string {
	lines := []string{
		s.title.Render(product.Name),
		s.meta.Render(string(product.ID)),
		"",
		fmt.Sprintf("%s %s", s.label.Render("price:"), s.price.Render(money(product.Price))),
		fmt.Sprintf("%s %s", s.label.Render("stock:"), stockBadge(product.Stock, s)),
	}
	if product.Category != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("category:"), s.detail.Render(product.Category)))
	}
	if product.Brand != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("brand:"), s.detail.Render(product.Brand)))
	}
	if len(product.Tags) > 0 {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("tags:"), s.meta.Render(strings.Join(product.Tags, ", "))))
	}
	if product.Description != "" {
		lines = append(lines, "", s.detail.Render(product.Description))
	}
	if !product.IsActive {
		lines = append(lines, "", s.warning.Render("This product is inactive."))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderCart renders the cart contents with mirrored totals.
func RenderCart(cart domain.Cart) (string, error) {
	return render(func(s styles) string {
		return renderCart(cart, s)
	})
}

func renderCart(cart domain.Cart, s styles) string {
	lines := []string{s.title.Render("Your Cart")}

	if cart.Empty() {
		lines = append(lines, s.empty.Render("Your cart is empty."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	lines = append(lines, s.header.Render(fmt.Sprintf("%d items", cart.TotalItems)))
	for _, line := range cart.Lines {
		lines = append(lines, s.section.Render(renderCartLine(line, s)))
	}
	lines = append(lines, s.section.Render(
		fmt.Sprintf("%s %s", s.label.Render("total:"), s.total.Render(money(cart.TotalAmount)))))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCartLine(line domain.CartLine, s styles) string {
	parts := []string{
		fmt.Sprintf("%s  %s", s.name.Render(line.ProductName), s.meta.Render("item "+line.ItemID)),
		fmt.Sprintf("  %s x %d = %s",
			s.price.Render(money(line.PriceAtAdd)),
			line.Quantity,
			s.price.Render(money(line.ItemTotal))),
	}
	if !line.IsAvailable {
		parts = append(parts, "  "+s.warning.Render("no longer available"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// RenderCheckout renders the checkout handoff: the taxed amount and the
// hosted payment URL the user must open to finish the purchase.
func RenderCheckout(cart domain.Cart, amount float64, session ports.CheckoutSession) (string, error) {
	return render(func(s styles) string {
		return renderCheckout(cart, amount, session, s)
	})
}

func renderCheckout(cart domain.Cart, amount float64, session ports.CheckoutSession, s styles) string {
	lines := []string{
		s.title.Render("Checkout"),
		fmt.Sprintf("%s %s", s.label.Render("items:"), s.detail.Render(cart.CheckoutLabel())),
		fmt.Sprintf("%s %s", s.label.Render("subtotal:"), s.detail.Render(money(cart.TotalAmount))),
		fmt.Sprintf("%s %s", s.label.Render("total with tax:"), s.total.Render(money(amount))),
		"",
		s.detail.Render("Complete your payment at:"),
		s.link.Render(session.URL),
	}
	if session.SuccessURL != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("on success:"), s.detail.Render(session.SuccessURL)))
	}
	if session.CancelURL != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("on cancel:"), s.detail.Render(session.CancelURL)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderStockUpdate renders the inventory change notice shown after a cart
// mutation adjusts displayed stock.
func RenderStockUpdate(update domain.StockUpdate) (string, error) {
	return render(func(s styles) string {
		return renderStockUpdate(update, s)
	})
}

func renderStockUpdate(update domain.StockUpdate, s styles) string {
	name := update.ProductName
	if name == "" {
		name = string(update.ProductID)
	}
	return fmt.Sprintf("%s %s: %d -> %d",
		s.label.Render("stock"),
		s.name.Render(name),
		update.PreviousStock,
		update.NewStock)
}

// RenderUsers renders the admin user directory.
func RenderUsers(users []domain.User, total int, hasMore bool) (string, error) {
	return render(func(s styles) string {
		return renderUsers(users, total, hasMore, s)
	})
}

func renderUsers(users []domain.User, total int, hasMore bool, s styles) string {
	header := fmt.Sprintf("showing %d of %d", len(users), total)
	if hasMore {
		header += " (more available)"
	}
	lines := []string{
		s.title.Render("Users"),
		s.header.Render(header),
	}

	if len(users) == 0 {
		lines = append(lines, s.empty.Render("No users found."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	for _, user := range users {
		lines = append(lines, s.section.Render(renderUserRow(user, s)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderUserRow(user domain.User, s styles) string {
	role := s.meta.Render(string(user.Role))
	if user.Role == domain.RoleAdmin {
		role = s.admin.Render(string(user.Role))
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		fmt.Sprintf("%s  %s", s.name.Render(user.Name), role),
		fmt.Sprintf("  %s  %s", s.detail.Render(user.Email), s.meta.Render(string(user.ID))),
	)
}

// RenderUserDetail renders one user record.
func RenderUserDetail(user domain.User) (string, error) {
	return render(func(s styles) string {
		return renderUserDetail(user, s)
	})
}

func renderUserDetail(user domain.User, s styles) string {
	lines := []string{
		s.title.Render(user.Name),
		s.meta.Render(string(user.ID)),
		"",
		fmt.Sprintf("%s %s", s.label.Render("email:"), s.detail.Render(user.Email)),
		fmt.Sprintf("%s %s", s.label.Render("role:"), s.detail.Render(string(user.Role))),
	}
	if user.Age != 0 {
		lines = append(lines, fmt.Sprintf("%s %d", s.label.Render("age:"), user.Age))
	}
	if user.Address != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("address:"), s.detail.Render(user.Address)))
	}
	if user.MobileNumber != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("mobile:"), s.detail.Render(user.MobileNumber)))
	}
	if user.Provider != "" {
		lines = append(lines, fmt.Sprintf("%s %s", s.label.Render("provider:"), s.detail.Render(user.Provider)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func money(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

func stockBadge(stock int, s styles) string {
	switch {
	case stock <= 0:
		return s.stockOut.Render("out of stock")
	case stock <= lowStockThreshold:
		return s.stockLow.Render(fmt.Sprintf("%d left", stock))
	default:
		return s.stockOK.Render(fmt.Sprintf("%d in stock", stock))
	}
}

func categoryBrand(product domain.Product) string {
	switch {
	case product.Category != "" && product.Brand != "":
		return product.Category + " / " + product.Brand
	case product.Category != "":
		return product.Category
	default:
		return product.Brand
	}
}

func truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}
