package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"techmart/internal/domain"
	"techmart/internal/repository"
)

// DefaultPeriod окно отчётов, если границы не заданы
const DefaultPeriod = 30 * 24 * time.Hour

// AnalyticsService агрегаты для дашборда поверх транзакций
type AnalyticsService struct {
	products repository.ProductRepository
	txs      repository.TransactionRepository
	tx       repository.TxManager
	now      func() time.Time
}

func NewAnalyticsService(products repository.ProductRepository, txs repository.TransactionRepository, tx repository.TxManager) *AnalyticsService {
	return &AnalyticsService{
		products: products,
		txs:      txs,
		tx:       tx,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Period is the half-open interval [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

func (p Period) contains(t time.Time) bool {
	return !t.Before(p.From) && t.Before(p.To)
}

// previous returns the period of equal length that ends where p starts.
func (p Period) previous() Period {
	return Period{From: p.From.Add(-p.To.Sub(p.From)), To: p.From}
}

// resolve fills missing bounds: To defaults to now, From to To minus DefaultPeriod.
func (s *AnalyticsService) resolve(p Period) (Period, error) {
	if p.To.IsZero() {
		p.To = s.now()
	}
	if p.From.IsZero() {
		p.From = p.To.Add(-DefaultPeriod)
	}
	if !p.From.Before(p.To) {
		return Period{}, ErrInvalidInput
	}
	return p, nil
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// percentChange is rounded to two decimals; growth from zero counts as 100%.
func percentChange(prev, cur decimal.Decimal) float64 {
	if prev.IsZero() {
		if cur.IsZero() {
			return 0
		}
		return 100
	}
	return money(cur.Sub(prev).Div(prev).Mul(decimal.NewFromInt(100)))
}

func (s *AnalyticsService) all(ctx context.Context) ([]domain.Transaction, error) {
	return s.txs.List(ctx, repository.TransactionFilter{})
}

// Overview считает KPI за период и их изменение относительно предыдущего
func (s *AnalyticsService) Overview(ctx context.Context, p Period) (domain.Overview, error) {
	p, err := s.resolve(p)
	if err != nil {
		return domain.Overview{}, err
	}
	all, err := s.all(ctx)
	if err != nil {
		return domain.Overview{}, err
	}

	var (
		out              domain.Overview
		revenue, prevRev decimal.Decimal
		prevCount        int
		prev             = p.previous()
	)
	for _, t := range all {
		switch {
		case p.contains(t.Timestamp):
			out.Data.TotalTransactions++
			switch t.Status {
			case domain.TransactionCompleted:
				out.Data.SuccessfulTransactions++
				revenue = revenue.Add(t.TotalAmount)
			case domain.TransactionFailed:
				out.Data.FailedTransactions++
			case domain.TransactionRefunded:
				out.Data.RefundedTransactions++
			case domain.TransactionPending:
				out.Data.PendingTransactions++
			}
			if t.FraudVerdict.Flagged() {
				out.Data.FlaggedTransactions++
			}
		case prev.contains(t.Timestamp):
			prevCount++
			if t.Status == domain.TransactionCompleted {
				prevRev = prevRev.Add(t.TotalAmount)
			}
		}
	}

	out.Data.TotalRevenue = money(revenue)
	if out.Data.SuccessfulTransactions > 0 {
		out.Data.AverageOrderValue = money(revenue.Div(decimal.NewFromInt(int64(out.Data.SuccessfulTransactions))))
	}
	out.Trends.RevenueChange = percentChange(prevRev, revenue)
	out.Trends.TransactionsChange = percentChange(decimal.NewFromInt(int64(prevCount)), decimal.NewFromInt(int64(out.Data.TotalTransactions)))
	return out, nil
}

// CompletedByCategory число завершённых транзакций по категориям,
// по убыванию количества.
func (s *AnalyticsService) CompletedByCategory(ctx context.Context, p Period) ([]domain.CategoryCount, error) {
	p, err := s.resolve(p)
	if err != nil {
		return nil, err
	}
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, t := range all {
		if t.Status != domain.TransactionCompleted || !p.contains(t.Timestamp) || t.Product == nil {
			continue
		}
		counts[t.Product.Category]++
	}
	out := make([]domain.CategoryCount, 0, len(counts))
	for c, n := range counts {
		out = append(out, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out, nil
}

// HourlySales разбивка завершённых продаж за UTC-сутки по часам.
// A zero day means today.
func (s *AnalyticsService) HourlySales(ctx context.Context, day time.Time) (domain.HourlySales, error) {
	if day.IsZero() {
		day = s.now()
	}
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	p := Period{From: start, To: start.Add(24 * time.Hour)}

	all, err := s.all(ctx)
	if err != nil {
		return domain.HourlySales{}, err
	}
	var (
		revenue [24]decimal.Decimal
		count   [24]int
		total   decimal.Decimal
		n       int
	)
	for _, t := range all {
		if t.Status != domain.TransactionCompleted || !p.contains(t.Timestamp) {
			continue
		}
		h := t.Timestamp.UTC().Hour()
		revenue[h] = revenue[h].Add(t.TotalAmount)
		count[h]++
		total = total.Add(t.TotalAmount)
		n++
	}

	out := domain.HourlySales{
		Data:              make([]domain.HourlySalesPoint, 24),
		TotalRevenue:      money(total),
		TotalTransactions: n,
		Period: domain.SalesPeriod{
			Start: p.From.Format(time.RFC3339),
			End:   p.To.Format(time.RFC3339),
			Date:  start.Format("2006-01-02"),
		},
	}
	for h := 0; h < 24; h++ {
		pt := domain.HourlySalesPoint{
			Hour:         fmt.Sprintf("%02d:00", h),
			Revenue:      money(revenue[h]),
			Transactions: count[h],
		}
		if count[h] > 0 {
			pt.AverageOrderValue = money(revenue[h].Div(decimal.NewFromInt(int64(count[h]))))
		}
		out.Data[h] = pt
	}
	return out, nil
}

// BestPerforming товары с наибольшей выручкой по завершённым транзакциям
func (s *AnalyticsService) BestPerforming(ctx context.Context, limit int) ([]domain.BestPerformingProduct, error) {
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	type agg struct {
		revenue decimal.Decimal
		sales   int64
		orders  int64
	}
	byProduct := make(map[int64]*agg)
	for _, t := range all {
		if t.Status != domain.TransactionCompleted {
			continue
		}
		a := byProduct[t.ProductID]
		if a == nil {
			a = &agg{}
			byProduct[t.ProductID] = a
		}
		a.revenue = a.revenue.Add(t.TotalAmount)
		a.sales += t.Quantity
		a.orders++
	}

	out := make([]domain.BestPerformingProduct, 0, len(byProduct))
	for id, a := range byProduct {
		row := domain.BestPerformingProduct{
			ProductID:         id,
			TotalRevenue:      money(a.revenue),
			TotalSales:        a.sales,
			AverageOrderValue: money(a.revenue.Div(decimal.NewFromInt(a.orders))),
		}
		p, err := s.products.GetByID(ctx, id)
		switch {
		case err == nil:
			row.ProductName, row.Category, row.SKU, row.CurrentStock = p.Name, p.Category, p.SKU, p.StockQuantity
		case errors.Is(err, repository.ErrNotFound):
			// deleted from the catalog; keep the historical figures
		default:
			return nil, err
		}
		out = append(out, row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalRevenue != out[j].TotalRevenue {
			return out[i].TotalRevenue > out[j].TotalRevenue
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// sessionBurst is the number of transactions per session above which
// a session looks automated.
const sessionBurst = 3

// FraudScore оценивает транзакцию по 100-балльной шкале.
// sessionCount is the number of transactions sharing its session id.
func FraudScore(t domain.Transaction, sessionCount int) int {
	score := 0
	switch {
	case t.TotalAmount.GreaterThanOrEqual(decimal.NewFromInt(1000)):
		score += 30
	case t.TotalAmount.GreaterThanOrEqual(decimal.NewFromInt(500)):
		score += 15
	}
	if t.Quantity >= 10 {
		score += 20
	}
	gross := t.UnitPrice.Mul(decimal.NewFromInt(t.Quantity))
	if gross.IsPositive() && t.DiscountApplied.Div(gross).GreaterThan(decimal.NewFromFloat(0.2)) {
		score += 15
	}
	switch t.IPAddress {
	case "", "127.0.0.1", "::1":
		score += 10
	}
	if t.SessionID != "" && sessionCount > sessionBurst {
		score += 20
	}
	if t.Status == domain.TransactionFailed {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// Verdict maps a score onto the five risk bands.
func Verdict(score int) domain.FraudVerdict {
	switch {
	case score < 20:
		return domain.VerdictSafe
	case score < 40:
		return domain.VerdictLowRisk
	case score < 60:
		return domain.VerdictMediumRisk
	case score < 80:
		return domain.VerdictHighRisk
	default:
		return domain.VerdictFraudulent
	}
}

// CalculateFraudScores пересчитывает оценки всех транзакций.
// Updated counts transactions whose score or verdict changed.
func (s *AnalyticsService) CalculateFraudScores(ctx context.Context) (domain.FraudScores, error) {
	var out domain.FraudScores
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		all, err := s.txs.List(ctx, repository.TransactionFilter{})
		if err != nil {
			return err
		}
		sessions := make(map[string]int)
		for _, t := range all {
			sessions[t.SessionID]++
		}
		for i := range all {
			t := all[i]
			score := FraudScore(t, sessions[t.SessionID])
			verdict := Verdict(score)
			out.Processed++
			switch verdict {
			case domain.VerdictSafe:
				out.VerdictBreakdown.Safe++
			case domain.VerdictLowRisk:
				out.VerdictBreakdown.LowRisk++
			case domain.VerdictMediumRisk:
				out.VerdictBreakdown.MediumRisk++
			case domain.VerdictHighRisk:
				out.VerdictBreakdown.HighRisk++
			case domain.VerdictFraudulent:
				out.VerdictBreakdown.Fraudulent++
			}
			if t.FraudScore == score && t.FraudVerdict == verdict {
				continue
			}
			t.FraudScore, t.FraudVerdict = score, verdict
			if err := s.txs.Update(ctx, &t); err != nil {
				return err
			}
			out.Updated++
		}
		return nil
	})
	if err != nil {
		return domain.FraudScores{}, err
	}
	return out, nil
}
