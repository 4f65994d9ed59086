package merge

import "sort"

// OrderList holds distinct emails ordered by their most recent occurrence.
// Touching an email already present moves it to the end.
type OrderList struct {
	last map[string]int
	seq  int
}

// NewOrderList returns an empty list.
func NewOrderList() *OrderList {
	return &OrderList{last: make(map[string]int)}
}

// Touch records an occurrence of email, placing it after every email
// touched before.
func (o *OrderList) Touch(email string) {
	o.last[email] = o.seq
	o.seq++
}

// Has reports whether email has been touched.
func (o *OrderList) Has(email string) bool {
	_, ok := o.last[email]
	return ok
}

// Len returns the number of distinct emails.
func (o *OrderList) Len() int {
	return len(o.last)
}

// Emails returns the distinct emails in last-occurrence order.
func (o *OrderList) Emails() []string {
	out := make([]string, 0, len(o.last))
	for e := range o.last {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		return o.last[out[i]] < o.last[out[j]]
	})
	return out
}
