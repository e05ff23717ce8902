// Copyright 2020 Grail Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

/*Package origin ties the SNP table reader, the segmentation stages and the
  report writer together.

  An orientation fixes which parent is the receptor.  Run computes both
  orientations from the P1-sorted and P2-sorted versions of the same SNP
  table, writes a report for each and returns a verdict on which parent is
  the receptor.
*/
package origin
