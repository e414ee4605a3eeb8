package public

import (
	publicdomain "github.com/rickygarrix/otonavi-sub000/internal/public/domain"
)

type storeSummaryResponse struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	Name       string `json:"name"`
	Kana       string `json:"kana,omitempty"`
	StatusKey  string `json:"statusKey"`
	Prefecture string `json:"prefecture,omitempty"`
	City       string `json:"city,omitempty"`
	VenueType  string `json:"venueType,omitempty"`
	ImageURL   string `json:"imageUrl"`
}

type storeListResponse struct {
	Items []storeSummaryResponse `json:"items"`
	Total int                    `json:"total"`
}

type facetValuesPayload struct {
	Keys   []string `json:"keys"`
	Labels []string `json:"labels"`
}

type storeSearchResponse struct {
	ID        string `json:"id"`
	Slug      string `json:"slug"`
	Name      string `json:"name"`
	Kana      string `json:"kana,omitempty"`
	StatusKey string `json:"statusKey"`
	ImageURL  string `json:"imageUrl"`

	Facets map[string]facetValuesPayload `json:"facets"`
}

type storeSearchListResponse struct {
	Items []storeSearchResponse `json:"items"`
	Total int                   `json:"total"`
}

type storeDetailResponse struct {
	storeSearchResponse

	Description   string   `json:"description,omitempty"`
	Access        string   `json:"access,omitempty"`
	Address       string   `json:"address,omitempty"`
	BusinessHours string   `json:"businessHours,omitempty"`
	GalleryURLs   []string `json:"galleryUrls"`
}

type categoryDefinitionPayload struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	SortOrder int    `json:"sortOrder"`
}

type cityPayload struct {
	Key           string `json:"key"`
	Label         string `json:"label"`
	PrefectureKey string `json:"prefectureKey"`
	SortOrder     int    `json:"sortOrder"`
}

type facetMetadataPayload struct {
	Table       string                      `json:"table"`
	Section     string                      `json:"section"`
	Multiple    bool                        `json:"multiple"`
	Definitions []categoryDefinitionPayload `json:"definitions"`
}

type filterMetadataResponse struct {
	Facets []facetMetadataPayload `json:"facets"`
	Cities []cityPayload          `json:"cities"`

	LabelByKey     map[string]string `json:"labelByKey"`
	SectionByLabel map[string]string `json:"sectionByLabel"`
	TableByKey     map[string]string `json:"tableByKey"`
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

type contactResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

// buildStoreSummaryResponse は店舗サマリを一覧表示用 DTO に変換する。
func buildStoreSummaryResponse(summary publicdomain.StoreSummary) storeSummaryResponse {
	return storeSummaryResponse{
		ID:         summary.ID,
		Slug:       summary.Slug,
		Name:       summary.Name,
		Kana:       summary.Kana,
		StatusKey:  summary.StatusKey,
		Prefecture: summary.PrefectureLabel,
		City:       summary.CityLabel,
		VenueType:  summary.VenueTypeLabel,
		ImageURL:   summary.ImageURL,
	}
}

// buildStoreSearchResponse は検索レコードをファセットのテーブル名をキーにした DTO に変換する。
func buildStoreSearchResponse(record publicdomain.StoreSearchRecord) storeSearchResponse {
	facets := map[string]publicdomain.FacetValues{
		publicdomain.TablePrefectures:     record.Prefecture,
		publicdomain.TableCities:          record.City,
		publicdomain.TableVenueTypes:      record.VenueType,
		publicdomain.TablePriceRanges:     record.PriceRange,
		publicdomain.TableStoreSizes:      record.StoreSize,
		publicdomain.TableCustomerTypes:   record.CustomerTypes,
		publicdomain.TableAtmospheres:     record.Atmospheres,
		publicdomain.TableDrinks:          record.Drinks,
		publicdomain.TablePaymentMethods:  record.PaymentMethods,
		publicdomain.TableEventTrends:     record.EventTrends,
		publicdomain.TableBaggagePolicies: record.BaggagePolicies,
		publicdomain.TableSmokingPolicies: record.SmokingPolicies,
		publicdomain.TableToilets:         record.Toilets,
		publicdomain.TableEnvironments:    record.Environments,
		publicdomain.TableAmenities:       record.Amenities,
	}

	payload := make(map[string]facetValuesPayload, len(facets))
	for table, values := range facets {
		payload[table] = facetValuesPayload{
			Keys:   emptyIfNil(values.Keys),
			Labels: emptyIfNil(values.Labels),
		}
	}

	return storeSearchResponse{
		ID:        record.ID,
		Slug:      record.Slug,
		Name:      record.Name,
		Kana:      record.Kana,
		StatusKey: record.StatusKey,
		ImageURL:  record.ImageURL,
		Facets:    payload,
	}
}

func buildStoreDetailResponse(detail publicdomain.StoreDetail) storeDetailResponse {
	return storeDetailResponse{
		storeSearchResponse: buildStoreSearchResponse(detail.StoreSearchRecord),
		Description:         detail.Description,
		Access:              detail.Access,
		Address:             detail.Address,
		BusinessHours:       detail.BusinessHours,
		GalleryURLs:         emptyIfNil(detail.GalleryURLs),
	}
}

func buildFilterMetadataResponse(master *publicdomain.MasterData) filterMetadataResponse {
	facets := make([]facetMetadataPayload, 0, len(publicdomain.Facets))
	for _, facet := range publicdomain.Facets {
		definitions := master.Definitions[facet.Table]
		payload := make([]categoryDefinitionPayload, 0, len(definitions))
		for _, def := range definitions {
			payload = append(payload, categoryDefinitionPayload{
				Key:       def.Key,
				Label:     def.Label,
				SortOrder: def.SortOrder,
			})
		}
		facets = append(facets, facetMetadataPayload{
			Table:       facet.Table,
			Section:     facet.Section,
			Multiple:    facet.Multiple,
			Definitions: payload,
		})
	}

	cities := make([]cityPayload, 0, len(master.Cities))
	for _, city := range master.Cities {
		cities = append(cities, cityPayload{
			Key:           city.Key,
			Label:         city.Label,
			PrefectureKey: city.PrefectureKey,
			SortOrder:     city.SortOrder,
		})
	}

	return filterMetadataResponse{
		Facets:         facets,
		Cities:         cities,
		LabelByKey:     master.LabelByKey,
		SectionByLabel: master.SectionByLabel,
		TableByKey:     master.TableByKey,
	}
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
