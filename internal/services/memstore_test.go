package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"pointmall/internal/models"
)

// memState 内存中的全部表，事务失败时整体回滚
type memState struct {
	users        map[uint]models.User
	items        map[uint]models.ExchangeItem
	cards        map[uint]models.VipCard
	packages     map[uint]models.CoinPackage
	pointLogs    []models.PointLog
	exchangeLogs []models.ExchangeLog
	orders       []models.RechargeOrder
}

func (s memState) clone() memState {
	c := memState{
		users:        make(map[uint]models.User, len(s.users)),
		items:        make(map[uint]models.ExchangeItem, len(s.items)),
		cards:        make(map[uint]models.VipCard, len(s.cards)),
		packages:     make(map[uint]models.CoinPackage, len(s.packages)),
		pointLogs:    append([]models.PointLog(nil), s.pointLogs...),
		exchangeLogs: append([]models.ExchangeLog(nil), s.exchangeLogs...),
		orders:       append([]models.RechargeOrder(nil), s.orders...),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.items {
		c.items[k] = v
	}
	for k, v := range s.cards {
		c.cards[k] = v
	}
	for k, v := range s.packages {
		c.packages[k] = v
	}
	return c
}

type memStore struct {
	mu    sync.Mutex
	state memState
	clock time.Time
	// failOn 让指定的写操作返回错误，用于验证回滚
	failOn string
}

var errInjected = errors.New("injected failure")

func newMemStore() *memStore {
	return &memStore{
		state: memState{
			users:    map[uint]models.User{},
			items:    map[uint]models.ExchangeItem{},
			cards:    map[uint]models.VipCard{},
			packages: map[uint]models.CoinPackage{},
		},
		clock: time.Date(2026, 3, 15, 10, 0, 0, 0, time.Local),
	}
}

func (m *memStore) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := m.state.clone()
	if err := fn(&memTx{m: m}); err != nil {
		m.state = snapshot
		return err
	}
	return nil
}

func (m *memStore) user(id uint) models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.users[id]
}

type memTx struct {
	m *memStore
}

func (t *memTx) fail(op string) error {
	if t.m.failOn == op {
		return errInjected
	}
	return nil
}

func (t *memTx) LockUser(userID uint) (*models.User, error) {
	u, ok := t.m.state.users[userID]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return &u, nil
}

func (t *memTx) FindActiveItem(itemID uint) (*models.ExchangeItem, error) {
	it, ok := t.m.state.items[itemID]
	if !ok || it.Status != models.ExchangeItemActive {
		return nil, nil
	}
	return &it, nil
}

func (t *memTx) FindVipCard(cardID uint) (*models.VipCard, error) {
	c, ok := t.m.state.cards[cardID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (t *memTx) FindCoinPackage(packageID uint) (*models.CoinPackage, error) {
	p, ok := t.m.state.packages[packageID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (t *memTx) CountPointLogsSince(userID uint, reason string, since time.Time) (int64, error) {
	var n int64
	for _, l := range t.m.state.pointLogs {
		if l.UserID == userID && l.Reason == reason && !l.CreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

func (t *memTx) AdjustPoints(userID uint, delta int) (bool, error) {
	if err := t.fail("AdjustPoints"); err != nil {
		return false, err
	}
	u := t.m.state.users[userID]
	if u.Points+delta < 0 {
		return false, nil
	}
	u.Points += delta
	t.m.state.users[userID] = u
	return true, nil
}

func (t *memTx) AddCoin(userID uint, amount int) error {
	if err := t.fail("AddCoin"); err != nil {
		return err
	}
	u := t.m.state.users[userID]
	u.Coin += amount
	t.m.state.users[userID] = u
	return nil
}

func (t *memTx) GrantVip(userID, cardID uint, expireAt time.Time) error {
	if err := t.fail("GrantVip"); err != nil {
		return err
	}
	u := t.m.state.users[userID]
	u.IsVip = true
	u.VipExpired = false
	u.VipCardID = &cardID
	u.VipExpireTime = &expireAt
	t.m.state.users[userID] = u
	return nil
}

func (t *memTx) CreatePointLog(log *models.PointLog) error {
	if err := t.fail("CreatePointLog"); err != nil {
		return err
	}
	log.ID = uint(len(t.m.state.pointLogs) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = t.m.clock
	}
	t.m.state.pointLogs = append(t.m.state.pointLogs, *log)
	return nil
}

func (t *memTx) CreateExchangeLog(log *models.ExchangeLog) error {
	if err := t.fail("CreateExchangeLog"); err != nil {
		return err
	}
	log.ID = uint(len(t.m.state.exchangeLogs) + 1)
	if log.CreatedAt.IsZero() {
		log.CreatedAt = t.m.clock.Add(time.Duration(log.ID) * time.Second)
	}
	t.m.state.exchangeLogs = append(t.m.state.exchangeLogs, *log)
	return nil
}

func (t *memTx) LockOrder(orderNo string) (*models.RechargeOrder, error) {
	for _, o := range t.m.state.orders {
		if o.OrderNo == orderNo {
			return &o, nil
		}
	}
	return nil, nil
}

func (t *memTx) MarkOrderPaid(orderID uint, tradeNo string, paidAt time.Time) error {
	for i, o := range t.m.state.orders {
		if o.ID == orderID {
			o.Status = models.OrderStatusPaid
			o.TradeNo = &tradeNo
			o.PaidAt = &paidAt
			t.m.state.orders[i] = o
			return nil
		}
	}
	return ErrOrderNotFound
}

func (m *memStore) ListActiveItems(ctx context.Context) ([]models.ExchangeItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ExchangeItem
	for _, it := range m.state.items {
		if it.Status == models.ExchangeItemActive {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func paginate[T any](rows []T, offset, limit int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func (m *memStore) ListExchangeLogs(ctx context.Context, userID uint, offset, limit int) ([]models.ExchangeLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []models.ExchangeLog
	for i := len(m.state.exchangeLogs) - 1; i >= 0; i-- {
		if l := m.state.exchangeLogs[i]; l.UserID == userID {
			rows = append(rows, l)
		}
	}
	return paginate(rows, offset, limit), int64(len(rows)), nil
}

func (m *memStore) ListPointLogs(ctx context.Context, userID uint, offset, limit int) ([]models.PointLog, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []models.PointLog
	for i := len(m.state.pointLogs) - 1; i >= 0; i-- {
		if l := m.state.pointLogs[i]; l.UserID == userID {
			rows = append(rows, l)
		}
	}
	return paginate(rows, offset, limit), int64(len(rows)), nil
}

func (m *memStore) FindItem(ctx context.Context, itemID uint) (*models.ExchangeItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.state.items[itemID]
	if !ok {
		return nil, nil
	}
	return &it, nil
}

func (m *memStore) CreateItem(ctx context.Context, item *models.ExchangeItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	item.ID = uint(len(m.state.items) + 1)
	m.state.items[item.ID] = *item
	return nil
}

func (m *memStore) SaveItem(ctx context.Context, item *models.ExchangeItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.items[item.ID] = *item
	return nil
}

func (m *memStore) GetVipCard(ctx context.Context, cardID uint) (*models.VipCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.state.cards[cardID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memStore) GetCoinPackage(ctx context.Context, packageID uint) (*models.CoinPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.state.packages[packageID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (m *memStore) ListVipCards(ctx context.Context) ([]models.VipCard, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.VipCard
	for _, c := range m.state.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) ListCoinPackages(ctx context.Context) ([]models.CoinPackage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.CoinPackage
	for _, p := range m.state.packages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memStore) CreateOrder(ctx context.Context, order *models.RechargeOrder) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order.ID = uint(len(m.state.orders) + 1)
	m.state.orders = append(m.state.orders, *order)
	return nil
}

func (m *memStore) ListOrders(ctx context.Context, userID uint, offset, limit int) ([]models.RechargeOrder, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows []models.RechargeOrder
	for i := len(m.state.orders) - 1; i >= 0; i-- {
		if o := m.state.orders[i]; o.UserID == userID {
			rows = append(rows, o)
		}
	}
	return paginate(rows, offset, limit), int64(len(rows)), nil
}

func (m *memStore) FindUserByUUID(ctx context.Context, uuid string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.state.users {
		if u.UUID == uuid {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.state.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreateUser(ctx context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	user.ID = uint(len(m.state.users) + 1)
	m.state.users[user.ID] = *user
	return nil
}

func (m *memStore) ExpireVip(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, u := range m.state.users {
		if u.IsVip && u.VipExpireTime != nil && u.VipExpireTime.Before(now) {
			u.IsVip = false
			u.VipExpired = true
			m.state.users[id] = u
			n++
		}
	}
	return n, nil
}
