package money

// Total sums price times quantity over the cart. Entries whose id has no
// price or whose quantity is not positive are skipped.
func Total(cart map[string]int, prices map[string]Amount) Amount {
	total := Zero
	for itemID, quantity := range cart {
		price, ok := prices[itemID]
		if !ok || quantity <= 0 {
			continue
		}
		total = total.Add(price.Mul(quantity))
	}
	return total
}

// Change is what goes back to the customer. A negative received amount
// counts as nothing received, and underpayment yields zero change rather
// than a deficit.
func Change(total, received Amount) Amount {
	return received.NonNegative().Sub(total).NonNegative()
}

// Tip is the residual of received after total and change. With change from
// Change it is always zero; it differs only when change was overridden.
func Tip(total, received, change Amount) Amount {
	if received.IsNegative() {
		return Zero
	}
	return received.Sub(total).Sub(change).NonNegative()
}

// ChangeForTip recomputes change once the operator entered a tip by hand:
// the tip takes precedence and change is the residual, floored at zero.
func ChangeForTip(total, received, tip Amount) Amount {
	return received.NonNegative().Sub(total).Sub(tip).NonNegative()
}

// Balance is received minus total, signed, for display while the operator
// is still typing. Nothing received yet shows as zero.
func Balance(total, received Amount) Amount {
	if received <= 0 {
		return Zero
	}
	return received.Sub(total)
}

// IsUnderpaid reports whether received does not cover total.
func IsUnderpaid(total, received Amount) bool {
	return received.NonNegative() < total
}
