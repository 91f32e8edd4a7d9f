// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"iter"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/versesim"
	"github.com/poiesic/versesim/ingestion"
)

// Opening verses of the seven Mu'allaqat and a few well known lines.
var verses = []string{
	"قفا نبك من ذكرى حبيب ومنزل بسقط اللوى بين الدخول فحومل",
	"فتوضح فالمقراة لم يعف رسمها لما نسجتها من جنوب وشمأل",
	"ترى بعر الآرام في عرصاتها وقيعانها كأنه حب فلفل",
	"كأني غداة البين يوم تحملوا لدى سمرات الحي ناقف حنظل",
	"لخولة أطلال ببرقة ثهمد تلوح كباقي الوشم في ظاهر اليد",
	"وقوفا بها صحبي علي مطيهم يقولون لا تهلك أسى وتجلد",
	"ألا هبي بصحنك فاصبحينا ولا تبقي خمور الأندرينا",
	"مشعشعة كأن الحص فيها إذا ما الماء خالطها سخينا",
	"أمن أم أوفى دمنة لم تكلم بحومانة الدراج فالمتثلم",
	"ودار لها بالرقمتين كأنها مراجع وشم في نواشر معصم",
	"عفت الديار محلها فمقامها بمنى تأبد غولها فرجامها",
	"فمدافع الريان عري رسمها خلقا كما ضمن الوحي سلامها",
	"هل غادر الشعراء من متردم أم هل عرفت الدار بعد توهم",
	"يا دار عبلة بالجواء تكلمي وعمي صباحا دار عبلة واسلمي",
	"آذنتنا ببينها أسماء رب ثاو يمل منه الثواء",
	"بعد عهد لنا ببرقة شماء فأدنى ديارها الخلصاء",
	"على قدر أهل العزم تأتي العزائم وتأتي على قدر الكرام المكارم",
	"الخيل والليل والبيداء تعرفني والسيف والرمح والقرطاس والقلم",
	"إذا رأيت نيوب الليث بارزة فلا تظنن أن الليث يبتسم",
	"ما كل ما يتمنى المرء يدركه تجري الرياح بما لا تشتهي السفن",
}

var (
	dbPath       = flag.String("db", "./verses_db", "database directory")
	seedFileName = flag.String("src", "", "file of seed verses, one per line")
	poemSize     = flag.Int("poem-size", 4, "verses per generated poem")
)

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// linesFromFile returns an iterator over the non-blank lines of a file.
func linesFromFile(filename string) (iter.Seq[string], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

// linesFromSlice returns an iterator over a slice of strings.
func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// bookFromLines groups consecutive verses into poems of size verses each.
func bookFromLines(title string, source iter.Seq[string], size int) *ingestion.Book {
	book := &ingestion.Book{Title: title}
	var current *ingestion.PoemText

	for line := range source {
		if current == nil || len(current.Verses) == size {
			book.Poems = append(book.Poems, ingestion.PoemText{Title: fmt.Sprintf("Seed %d", len(book.Poems)+1)})
			current = &book.Poems[len(book.Poems)-1]
		}
		current.Verses = append(current.Verses, line)
	}

	return book
}

func main() {
	db, err := versesim.NewDatabase(*dbPath)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	importer, err := db.NewImporter(ingestion.WithProgress(os.Stderr))
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(verses)
	}

	result, err := importer.ImportBook(ctx, bookFromLines("Seed", source, max(*poemSize, 1)))
	if err != nil {
		panic(err)
	}
	slog.Info("seeded database", "poems", result.Poems, "verses", result.Verses, "duplicates", result.Duplicates)
}
