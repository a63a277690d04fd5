package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-classifieds-api/internal/domain/entity"
	repo "github.com/oksasatya/go-classifieds-api/internal/domain/repository"
	"github.com/oksasatya/go-classifieds-api/internal/infrastructure/imagestore"
)

// AdSummary is the list/mutation view of an ad.
type AdSummary struct {
	Pk     int    `json:"pk"`
	Author int    `json:"author"`
	Image  string `json:"image"`
	Price  int    `json:"price"`
	Title  string `json:"title"`
}

// AdList groups ad summaries with their count, in repository order.
type AdList struct {
	Count   int         `json:"count"`
	Results []AdSummary `json:"results"`
}

// AdDetail is the single-ad view. The author fields are read live from
// the owning account at request time, unlike comment author fields
// which are snapshotted at creation.
type AdDetail struct {
	Pk              int    `json:"pk"`
	AuthorFirstName string `json:"authorFirstName"`
	AuthorLastName  string `json:"authorLastName"`
	Description     string `json:"description"`
	Email           string `json:"email"`
	Image           string `json:"image"`
	Phone           string `json:"phone"`
	Price           int    `json:"price"`
	Title           string `json:"title"`
}

// CreateOrUpdateAd carries the mutable ad fields.
type CreateOrUpdateAd struct {
	Title       string `json:"title" binding:"required,min=4,max=32"`
	Price       int    `json:"price" binding:"min=0,max=10000000"`
	Description string `json:"description" binding:"required,min=8,max=64"`
}

// AdsService owns the ad lifecycle: CRUD, the author-or-admin rule on
// every mutation, and the image attachment kept consistent with the
// record. ES is optional; when configured the service maintains a
// best-effort search index alongside the durable state.
type AdsService struct {
	Ads        repo.AdRepository
	Users      repo.UserRepository
	Images     *imagestore.Store
	Logger     *logrus.Logger
	ES         *elasticsearch.Client
	ESAdsIndex string
}

func NewAdsService(ads repo.AdRepository, users repo.UserRepository, images *imagestore.Store, logger *logrus.Logger, es *elasticsearch.Client, esAdsIndex string) *AdsService {
	return &AdsService{Ads: ads, Users: users, Images: images, Logger: logger, ES: es, ESAdsIndex: esAdsIndex}
}

func adSummary(ad *entity.Ad) AdSummary {
	return AdSummary{Pk: ad.ID, Author: ad.AuthorID, Image: ad.Image, Price: ad.Price, Title: ad.Title}
}

// ListAll returns every ad in repository order. No ownership check on
// read paths.
func (s *AdsService) ListAll(ctx context.Context) (*AdList, error) {
	ads, err := s.Ads.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]AdSummary, 0, len(ads))
	for i := range ads {
		results = append(results, adSummary(&ads[i]))
	}
	return &AdList{Count: len(results), Results: results}, nil
}

// Create stores the image first and persists the ad only after the
// write succeeded, so a failed upload never leaves a record behind.
func (s *AdsService) Create(ctx context.Context, actorEmail string, props CreateOrUpdateAd, image []byte, originalFilename string) (*AdSummary, error) {
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	name, err := imagestore.GenerateName(originalFilename)
	if err != nil {
		return nil, err
	}
	ref, err := s.Images.Put(name, image)
	if err != nil {
		return nil, err
	}
	ad := &entity.Ad{
		Title:       props.Title,
		Price:       props.Price,
		Description: props.Description,
		Image:       ref,
		AuthorID:    actor.ID,
	}
	if err := s.Ads.Create(ctx, ad); err != nil {
		if delErr := s.Images.Delete(ref); delErr != nil {
			s.Logger.WithError(delErr).WithField("ref", ref).Warn("orphaned image cleanup failed")
		}
		return nil, err
	}
	s.indexAd(ctx, ad)
	out := adSummary(ad)
	return &out, nil
}

// Get returns the detail view with author fields joined live from the
// owning account.
func (s *AdsService) Get(ctx context.Context, id int) (*AdDetail, error) {
	ad, err := s.Ads.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &AdDetail{
		Pk:              ad.ID,
		AuthorFirstName: ad.AuthorFirstName,
		AuthorLastName:  ad.AuthorLastName,
		Description:     ad.Description,
		Email:           ad.AuthorEmail,
		Image:           ad.Image,
		Phone:           ad.AuthorPhone,
		Price:           ad.Price,
		Title:           ad.Title,
	}, nil
}

// Remove deletes the ad and its image file. The record wins: a failed
// file delete is logged and the record is removed anyway. An absent id
// reports ErrNotFound before any ownership check.
func (s *AdsService) Remove(ctx context.Context, actorEmail string, id int) error {
	ad, err := s.Ads.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return err
	}
	if !canModify(actor, ad.AuthorEmail) {
		return ErrForbidden
	}
	if err := s.Images.Delete(ad.Image); err != nil {
		s.Logger.WithError(err).WithFields(logrus.Fields{"ad": id, "ref": ad.Image}).Warn("ad image delete failed")
	}
	if err := s.Ads.Delete(ctx, id); err != nil {
		return err
	}
	s.deleteAdDoc(ctx, id)
	return nil
}

// Update replaces title, price and description; owner, id and image
// stay untouched. Nothing is written when authorization fails.
func (s *AdsService) Update(ctx context.Context, actorEmail string, id int, props CreateOrUpdateAd) (*AdSummary, error) {
	ad, err := s.Ads.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, ad.AuthorEmail) {
		return nil, ErrForbidden
	}
	ad.Title = props.Title
	ad.Price = props.Price
	ad.Description = props.Description
	if err := s.Ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	s.indexAd(ctx, ad)
	out := adSummary(ad)
	return &out, nil
}

// ListMine returns the acting account's own ads.
func (s *AdsService) ListMine(ctx context.Context, actorEmail string) (*AdList, error) {
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	ads, err := s.Ads.ListByAuthor(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	results := make([]AdSummary, 0, len(ads))
	for i := range ads {
		results = append(results, adSummary(&ads[i]))
	}
	return &AdList{Count: len(results), Results: results}, nil
}

// ReplaceImage swaps the ad's image: the stale file is deleted
// synchronously, the new one written, and only then is the reference
// committed on the record. The returned bytes are read back from the
// store, which doubles as a round-trip check of the new file.
func (s *AdsService) ReplaceImage(ctx context.Context, actorEmail string, id int, image []byte, originalFilename string) ([]byte, error) {
	ad, err := s.Ads.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	actor, err := s.Users.GetByEmail(ctx, actorEmail)
	if err != nil {
		return nil, err
	}
	if !canModify(actor, ad.AuthorEmail) {
		return nil, ErrForbidden
	}
	name, err := imagestore.GenerateName(originalFilename)
	if err != nil {
		return nil, err
	}
	if err := s.Images.Delete(ad.Image); err != nil {
		return nil, err
	}
	ref, err := s.Images.Put(name, image)
	if err != nil {
		return nil, err
	}
	ad.Image = ref
	if err := s.Ads.Update(ctx, ad); err != nil {
		return nil, err
	}
	return s.Images.Read(ref)
}

// Search queries the ad index on title and description. Without a
// configured ES client it returns an empty result set.
func (s *AdsService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESAdsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESAdsIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

func (s *AdsService) indexAd(ctx context.Context, ad *entity.Ad) {
	if s.ES == nil || s.ESAdsIndex == "" {
		return
	}
	doc := map[string]any{
		"pk":          ad.ID,
		"title":       ad.Title,
		"description": ad.Description,
		"price":       ad.Price,
		"author":      ad.AuthorID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESAdsIndex, DocumentID: strconv.Itoa(ad.ID), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("ad", ad.ID).Warn("es index failed")
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		s.Logger.WithFields(logrus.Fields{"status": res.Status(), "ad": ad.ID}).Warn("es index response error")
	}
}

func (s *AdsService) deleteAdDoc(ctx context.Context, id int) {
	if s.ES == nil || s.ESAdsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESAdsIndex, DocumentID: strconv.Itoa(id)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		s.Logger.WithError(err).WithField("ad", id).Warn("es delete failed")
		return
	}
	_ = res.Body.Close()
}
