package pricing

// Line is the priced part of a cart line: the unit price captured when the item was added and
// the quantity ordered.
type Line struct {
	Price    Amount
	Quantity int
}

func (l Line) Amount() Amount {
	return l.Price.Mul(l.Quantity)
}

// Subtotal sums price x quantity over lines. Amounts are integers, so repeated calls over the
// same lines always agree.
func Subtotal(lines []Line) Amount {
	var sum Amount
	for _, line := range lines {
		sum += line.Amount()
	}
	return sum
}

func Total(subtotal, deliveryFee Amount) Amount {
	return subtotal + deliveryFee
}

// CheckedSubtotal is Subtotal for lines whose prices or quantities were supplied by a client.
// It fails with ErrOutOfRange instead of wrapping.
func CheckedSubtotal(lines []Line) (Amount, error) {
	var sum Amount
	for _, line := range lines {
		amount, err := line.Price.CheckedMul(line.Quantity)
		if err != nil {
			return 0, err
		}
		if sum, err = sum.CheckedAdd(amount); err != nil {
			return 0, err
		}
	}
	return sum, nil
}

func CheckedTotal(subtotal, deliveryFee Amount) (Amount, error) {
	return subtotal.CheckedAdd(deliveryFee)
}
