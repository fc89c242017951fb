package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/hyunsoo-dev/matzip-backend/config"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/model"
	"github.com/hyunsoo-dev/matzip-backend/internal/app/repository"
	"github.com/hyunsoo-dev/matzip-backend/internal/db"
	"github.com/xuri/excelize/v2"
)

// XLSX 컬럼 배치: 상호명, 카테고리, 주소, 전화번호, 이미지URL, 설명, 태그(쉼표 구분)
const minColumns = 3

func main() {
	// 명령줄 인자 확인
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	// 설정 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// DB 연결
	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Repository 생성
	shopRepo := repository.NewShopRepository(db.GetDB())
	tagRepo := repository.NewTagRepository(db.GetDB())

	// XLSX 파일 읽기
	fmt.Printf("Reading XLSX file: %s\n", filePath)
	shops, shopTags, err := readShopsFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total shops to import: %d\n", len(shops))

	// 사용자 확인
	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	// 배치로 저장
	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := shopRepo.BulkCreate(shops, batchSize); err != nil {
		log.Fatal("Failed to bulk create shops:", err)
	}

	// 태그 컬럼이 있는 매장은 매장 태그까지 연결
	taggedCount, err := assignShopTags(tagRepo, shops, shopTags)
	if err != nil {
		log.Fatal("Failed to assign shop tags:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total shops imported: %d (tagged: %d)\n", len(shops), taggedCount)
}

// assignShopTags 태그 이름을 찾거나 만든 뒤 매장에 전체 교체 방식으로 연결한다
func assignShopTags(tagRepo *repository.TagRepository, shops []model.Shop, shopTags map[string][]string) (int, error) {
	tagIDCache := make(map[string]uint)
	tagged := 0

	for _, shop := range shops {
		key := fmt.Sprintf("%s|%s", shop.Name, shop.Address)
		names := shopTags[key]
		if len(names) == 0 {
			continue
		}

		var tagIDs []uint
		for _, name := range names {
			if id, ok := tagIDCache[name]; ok {
				tagIDs = append(tagIDs, id)
				continue
			}
			tag, err := tagRepo.FindTagByNameAndScope(name, model.TagScopeShop)
			if err != nil {
				tag = &model.Tag{Name: name, Scope: model.TagScopeShop}
				if err := tagRepo.CreateTag(tag); err != nil {
					return tagged, fmt.Errorf("failed to create tag %q: %w", name, err)
				}
			}
			tagIDCache[name] = tag.ID
			tagIDs = append(tagIDs, tag.ID)
		}

		if err := tagRepo.ReplaceShopTags(shop.ID, tagIDs); err != nil {
			return tagged, fmt.Errorf("failed to tag shop %q: %w", shop.Name, err)
		}
		tagged++
	}
	return tagged, nil
}

func readShopsFromXLSX(filePath string) ([]model.Shop, map[string][]string, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	// 첫 번째 시트 이름 가져오기
	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("no data found in XLSX file")
	}

	var shops []model.Shop
	shopTags := make(map[string][]string)
	seenShops := make(map[string]bool) // 중복 제거용
	skippedCount := 0

	// 첫 행은 헤더이므로 스킵
	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < minColumns {
			skippedCount++
			continue
		}

		name := strings.TrimSpace(row[0])
		category := strings.TrimSpace(row[1])
		address := strings.TrimSpace(row[2])
		phoneNumber := cell(row, 3)
		imageURL := cell(row, 4)
		description := cell(row, 5)

		if name == "" || address == "" {
			skippedCount++
			continue
		}
		if !isValidShopName(name) {
			skippedCount++
			continue
		}

		// 중복 체크 (이름+주소 기준)
		key := fmt.Sprintf("%s|%s", name, address)
		if seenShops[key] {
			skippedCount++
			continue
		}
		seenShops[key] = true

		if tags := parseTags(cell(row, 6)); len(tags) > 0 {
			shopTags[key] = tags
		}

		shops = append(shops, model.Shop{
			Name:        name,
			Category:    category,
			Address:     address,
			PhoneNumber: phoneNumber,
			ImageURL:    imageURL,
			Description: description,
		})

		// 진행 상황 출력 (1000개마다)
		if len(shops)%1000 == 0 {
			fmt.Printf("Processed %d shops...\n", len(shops))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid shops: %d\n", len(shops))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)

	return shops, shopTags, nil
}

// parseTags 쉼표 구분 태그 컬럼 파싱
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			tags = append(tags, strings.ToLower(part))
		}
	}
	return tags
}

// cell 옵션 컬럼은 비어 있을 수 있다
func cell(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// isValidShopName은 상호명이 유효한지 검증합니다
func isValidShopName(name string) bool {
	// 1. 최소 길이 체크 (2글자 미만 제외)
	nameRunes := []rune(name)
	if len(nameRunes) < 2 {
		return false
	}

	// 2. 숫자만 있는 경우 제외
	numOnlyReg := regexp.MustCompile(`^[0-9]+$`)
	if numOnlyReg.MatchString(name) {
		return false
	}

	// 3. 특수문자만 있는 경우 제외 (공백, 구두점, 기호만)
	specialOnlyReg := regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)
	if specialOnlyReg.MatchString(name) {
		return false
	}

	return true
}
